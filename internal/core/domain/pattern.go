package domain

// VoucherPattern is a boolean rule over a set of account codes.
// The variants are AndPattern, OrPattern and CodePattern.
type VoucherPattern interface {
	voucherPattern()
}

// AndPattern matches when every sub-pattern matches.
type AndPattern struct {
	Patterns []VoucherPattern
}

// OrPattern matches when any sub-pattern matches.
type OrPattern struct {
	Patterns []VoucherPattern
}

// CodePattern matches when any expression matches any code of the set.
type CodePattern struct {
	Expressions []string
}

func (AndPattern) voucherPattern()  {}
func (OrPattern) voucherPattern()   {}
func (CodePattern) voucherPattern() {}

// And builds an AndPattern.
func And(patterns ...VoucherPattern) AndPattern { return AndPattern{Patterns: patterns} }

// Or builds an OrPattern.
func Or(patterns ...VoucherPattern) OrPattern { return OrPattern{Patterns: patterns} }

// Code builds a CodePattern.
func Code(expressions ...string) CodePattern { return CodePattern{Expressions: expressions} }

// EitherPattern classifies a voucher by its debit-side and credit-side code sets.
// A nil side never matches; a nil *EitherPattern matches everything.
type EitherPattern struct {
	Debit  VoucherPattern
	Credit VoucherPattern
}

// PatternSpec is the declarative (YAML/JSON) form of a VoucherPattern.
// Exactly one of And, Or or Code is expected to be set.
type PatternSpec struct {
	And  []PatternSpec `json:"and,omitempty" yaml:"and,omitempty"`
	Or   []PatternSpec `json:"or,omitempty" yaml:"or,omitempty"`
	Code []string      `json:"code,omitempty" yaml:"code,omitempty"`
}

// Pattern converts the spec into a VoucherPattern. An empty spec yields nil.
func (s *PatternSpec) Pattern() VoucherPattern {
	if s == nil {
		return nil
	}
	switch {
	case len(s.And) > 0:
		return AndPattern{Patterns: specsToPatterns(s.And)}
	case len(s.Or) > 0:
		return OrPattern{Patterns: specsToPatterns(s.Or)}
	case len(s.Code) > 0:
		return CodePattern{Expressions: s.Code}
	}
	return nil
}

func specsToPatterns(specs []PatternSpec) []VoucherPattern {
	out := make([]VoucherPattern, 0, len(specs))
	for i := range specs {
		if p := specs[i].Pattern(); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// CashFlowActivity is the bucket a cash movement is reported under.
type CashFlowActivity string

const (
	OperatingActivity CashFlowActivity = "operating"
	InvestingActivity CashFlowActivity = "investing"
	FinancingActivity CashFlowActivity = "financing"
)

// CashFlowActivities lists the buckets in statement order.
var CashFlowActivities = []CashFlowActivity{OperatingActivity, InvestingActivity, FinancingActivity}

// CashFlowLine is one classified line of the cash flow statement.
// A line without a pattern catches every voucher that reaches it.
type CashFlowLine struct {
	Code     string
	Name     string
	Activity CashFlowActivity
	Pattern  *EitherPattern
}

// CashFlowLineSpec is the declarative form of a CashFlowLine.
type CashFlowLineSpec struct {
	Code     string           `json:"code" yaml:"code"`
	Name     string           `json:"name" yaml:"name"`
	Activity CashFlowActivity `json:"activity" yaml:"activity"`
	Debit    *PatternSpec     `json:"debit,omitempty" yaml:"debit,omitempty"`
	Credit   *PatternSpec     `json:"credit,omitempty" yaml:"credit,omitempty"`
}

// Line converts the spec into a CashFlowLine.
func (s CashFlowLineSpec) Line() CashFlowLine {
	line := CashFlowLine{Code: s.Code, Name: s.Name, Activity: s.Activity}
	if s.Debit != nil || s.Credit != nil {
		line.Pattern = &EitherPattern{Debit: s.Debit.Pattern(), Credit: s.Credit.Pattern()}
	}
	return line
}
