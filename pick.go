package interactor

// Pick returns the regions of m whose bounding box contains the local point
// (x, y), topmost first. A nil machine yields an empty list.
//
// Regions are walked in reverse draw order since the last drawn region
// renders on top and takes input priority.
func Pick(m Machine, x, y float64) []Region {
	if m == nil {
		return nil
	}
	regions := m.RegionsInDrawOrder()
	var hits []Region
	for i := len(regions) - 1; i >= 0; i-- {
		r := regions[i]
		if r == nil {
			continue
		}
		rx, ry := r.Offset()
		if r.ContainsLocalPoint(x-rx, y-ry) {
			hits = append(hits, r)
		}
	}
	return hits
}
