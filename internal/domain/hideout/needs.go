package hideout

// NeedBreakdown is the reconciled shortfall for one item.
type NeedBreakdown struct {
	TotalRequired   int `json:"totalRequired"`
	EffectiveHave   int `json:"effectiveHave"`
	NeededTotal     int `json:"neededTotal"`
	RequiredFir     int `json:"requiredFir"`
	HaveFirReserved int `json:"haveFirReserved"`
	NeededFir       int `json:"neededFir"`
	NeededNonFir    int `json:"neededNonFir"`
}

// Satisfied reports whether nothing more needs to be acquired.
func (n NeedBreakdown) Satisfied() bool {
	return n.NeededTotal == 0
}

// ComputeNeeds reconciles demand against owned stock.
//
// FIR stock can fill FIR or non-FIR demand; non-FIR stock only fills non-FIR
// demand. FIR stock is spent on FIR demand first and any leftover counts
// toward the non-FIR remainder.
//
// Negative inputs or requiredFir > totalRequired are caller bugs and are
// reported as a *ContractViolationError.
func ComputeNeeds(totalRequired, requiredFir, haveNonFir, haveFir int) (NeedBreakdown, error) {
	if err := CheckNeedsInput(totalRequired, requiredFir, haveNonFir, haveFir); err != nil {
		return NeedBreakdown{}, err
	}

	reqFir := requiredFir
	reqNonFir := totalRequired - reqFir

	usedFirForFir := min(haveFir, reqFir)
	remainingFirReq := reqFir - usedFirForFir
	leftoverFir := haveFir - usedFirForFir

	poolNonFirCapable := haveNonFir + leftoverFir
	remainingNonFirReq := max(0, reqNonFir-poolNonFirCapable)

	neededTotal := remainingFirReq + remainingNonFirReq

	return NeedBreakdown{
		TotalRequired:   totalRequired,
		EffectiveHave:   max(0, totalRequired-neededTotal),
		NeededTotal:     neededTotal,
		RequiredFir:     reqFir,
		HaveFirReserved: usedFirForFir,
		NeededFir:       remainingFirReq,
		NeededNonFir:    remainingNonFirReq,
	}, nil
}

// ComputeItemNeeds reconciles pooled demand for one item with its owned counts.
func ComputeItemNeeds(pooled PooledItem, owned ItemCount) (NeedBreakdown, error) {
	return ComputeNeeds(pooled.Count, pooled.FirCount, owned.Have, owned.HaveFir)
}

// CheckNeedsInput validates the preconditions of ComputeNeeds.
func CheckNeedsInput(totalRequired, requiredFir, haveNonFir, haveFir int) error {
	switch {
	case totalRequired < 0:
		return NewContractViolationError("totalRequired", totalRequired, "must be >= 0")
	case requiredFir < 0:
		return NewContractViolationError("requiredFir", requiredFir, "must be >= 0")
	case haveNonFir < 0:
		return NewContractViolationError("haveNonFir", haveNonFir, "must be >= 0")
	case haveFir < 0:
		return NewContractViolationError("haveFir", haveFir, "must be >= 0")
	case requiredFir > totalRequired:
		return NewContractViolationError("requiredFir", requiredFir, "must not exceed totalRequired")
	}
	return nil
}
