package core

// BalanceHeuristic returns the multiple importance sampling weight of strategy f
// when combined with strategy g: nf*fPdf / (nf*fPdf + ng*gPdf).
// Both pdfs must be expressed in the same measure.
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f+g <= 0 {
		return 0
	}
	return f / (f + g)
}
