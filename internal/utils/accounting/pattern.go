package accounting

import (
	"fmt"
	"regexp"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/patrickmn/go-cache"
)

// DefaultPatternCacheTTL is used when NewMatcher receives a non-positive ttl.
const DefaultPatternCacheTTL = 10 * time.Minute

// Matcher evaluates VoucherPatterns against sets of account codes.
// Compiled CODE expressions are cached, so one Matcher is safe and cheap to share.
type Matcher struct {
	compiled *cache.Cache
}

// NewMatcher creates a Matcher whose compiled expressions expire after ttl.
func NewMatcher(ttl time.Duration) *Matcher {
	if ttl <= 0 {
		ttl = DefaultPatternCacheTTL
	}
	return &Matcher{compiled: cache.New(ttl, 2*ttl)}
}

// MatchPattern reports whether codes satisfies pattern.
// AND requires every sub-pattern, OR any sub-pattern, and CODE any expression
// matching any code. An empty code set never satisfies a CODE pattern.
func (m *Matcher) MatchPattern(pattern domain.VoucherPattern, codes []string) (bool, error) {
	switch p := pattern.(type) {
	case domain.AndPattern:
		for _, sub := range p.Patterns {
			ok, err := m.MatchPattern(sub, codes)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case domain.OrPattern:
		for _, sub := range p.Patterns {
			ok, err := m.MatchPattern(sub, codes)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case domain.CodePattern:
		if len(codes) == 0 {
			return false, nil
		}
		for _, expr := range p.Expressions {
			re, err := m.compile(expr)
			if err != nil {
				return false, err
			}
			for _, code := range codes {
				if re.MatchString(code) {
					return true, nil
				}
			}
		}
		return false, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("%w: unsupported pattern %T", apperrors.ErrValidation, pattern)
	}
}

// MatchEitherPattern reports whether the debit side matches debitCodes or the
// credit side matches creditCodes. A nil pattern matches every voucher.
func (m *Matcher) MatchEitherPattern(either *domain.EitherPattern, debitCodes, creditCodes []string) (bool, error) {
	if either == nil {
		return true, nil
	}
	ok, err := m.MatchPattern(either.Debit, debitCodes)
	if err != nil || ok {
		return ok, err
	}
	return m.MatchPattern(either.Credit, creditCodes)
}

func (m *Matcher) compile(expr string) (*regexp.Regexp, error) {
	if cached, found := m.compiled.Get(expr); found {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid code expression %q: %v", apperrors.ErrValidation, expr, err)
	}
	m.compiled.Set(expr, re, cache.DefaultExpiration)
	return re, nil
}
