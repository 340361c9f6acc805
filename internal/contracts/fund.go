package contracts

// FundKind selects which metrics family applies to a fund
type FundKind string

const (
	FundKindStandard FundKind = "standard" // 单位净值 (unit NAV, ratio returns)
	FundKindMoney    FundKind = "money"    // 每万份收益 (daily yield, additive returns)
)

// String returns the kind name
func (k FundKind) String() string { return string(k) }

// IsValid reports whether k is a known kind
func (k FundKind) IsValid() bool {
	return k == FundKindStandard || k == FundKindMoney
}

// FundInfo is the fund metadata supplied by a DataProvider
type FundInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Type        string `json:"type"`
	IsMoneyFund bool   `json:"is_money_fund"`
}

// Kind maps the provider flag onto the tagged kind
func (f FundInfo) Kind() FundKind {
	if f.IsMoneyFund {
		return FundKindMoney
	}
	return FundKindStandard
}
