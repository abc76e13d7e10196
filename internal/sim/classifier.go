package sim

import "github.com/refset/ticketsim/internal/simconfig"

// ClassifyProfile maps an average document complexity to the skill tier
// assigned to the ticket. The average is rounded to 2 decimals first, so
// 3.004 with junior_max 3.0 is still junior.
func ClassifyProfile(avg float64, pa simconfig.ProfileAssignment) string {
	avg = round2(avg)
	switch {
	case avg <= pa.JuniorMax:
		return simconfig.ProfileJunior
	case avg <= pa.MidMax:
		return simconfig.ProfileMid
	default:
		return simconfig.ProfileSenior
	}
}
