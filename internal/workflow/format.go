package workflow

import (
	"fmt"
	"strings"

	"github.com/clothingadvisor/backend/internal/domain"
)

var priorityLabels = map[int]string{
	1: "essential",
	2: "recommended",
	3: "optional",
}

// FormatResponse renders rec as a conversational reply.
func FormatResponse(rec domain.ClothingRecommendation) string {
	var b strings.Builder

	b.WriteString(rec.Summary)
	b.WriteString("\n\nWhat to wear:\n")
	for _, it := range rec.Items {
		label, ok := priorityLabels[it.Priority]
		if !ok {
			label = "optional"
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", it.Name, label, it.Reason)
	}

	if len(rec.SpecialConsiderations) > 0 {
		b.WriteString("\nGood to know:\n")
		for _, note := range rec.SpecialConsiderations {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if rec.Weather.IsMock {
		b.WriteString("\nNote: live weather is unavailable, so this uses demo weather data.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
