package engine

// Scoring follows the cascade-variant table. The base award depends on how
// many rows completed simultaneously and, for small counts, on the gap
// pattern between them (non-adjacent clears are worth more because only the
// cascade can line them up). The final contribution is
// base × level × cascade bonus multiplier.

// baseScore returns the base award for one simultaneous clear. rows must be
// sorted ascending (FullRows order).
func baseScore(rows []int) int {
	n := len(rows)
	if n == 0 {
		return 0
	}
	span := rows[n-1] - rows[0]

	switch n {
	case 1:
		return 40
	case 2:
		switch span {
		case 1:
			return 100
		case 2: // one intact row sandwiched between the clears
			return 600
		default: // two-row gap pattern
			return 900
		}
	case 3:
		if span == 2 {
			return 300
		}
		return 1000 // three rows with one gap
	case 4:
		return 1200
	default:
		return 2000 * n
	}
}
