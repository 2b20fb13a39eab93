package recommendations

import (
	"fmt"
	"strings"
)

const systemPromptAdvisor = "You are a college admissions advisor. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."

// profileBrief renders the snapshot, stage, and preferences into the shared
// natural-language header used by every agent prompt.
func profileBrief(in AgentInput) string {
	snap := in.Snapshot
	var b strings.Builder

	b.WriteString("STUDENT PROFILE\n")
	if snap.FirstName != "" {
		fmt.Fprintf(&b, "Name: %s\n", snap.FirstName)
	}
	fmt.Fprintf(&b, "Grade: %s (%s)\n", in.Stage.Grade, in.Stage.Stage)
	if snap.GraduationYear > 0 {
		fmt.Fprintf(&b, "Graduation year: %d\n", snap.GraduationYear)
	}
	if snap.GPA != nil {
		if snap.GPAScale != nil {
			fmt.Fprintf(&b, "GPA: %.2f / %.2f\n", *snap.GPA, *snap.GPAScale)
		} else {
			fmt.Fprintf(&b, "GPA: %.2f\n", *snap.GPA)
		}
	}
	if snap.ClassRank != nil && snap.ClassSize != nil {
		fmt.Fprintf(&b, "Class rank: %d of %d\n", *snap.ClassRank, *snap.ClassSize)
	}
	if snap.SAT != nil {
		fmt.Fprintf(&b, "SAT: %d\n", *snap.SAT)
	}
	if snap.ACT != nil {
		fmt.Fprintf(&b, "ACT: %d\n", *snap.ACT)
	}

	if len(snap.Activities) > 0 {
		b.WriteString("\nACTIVITIES\n")
		for _, a := range snap.Activities {
			line := a.Name
			if a.Role != "" {
				line += " — " + a.Role
			}
			var markers []string
			if a.IsLeadership {
				markers = append(markers, "leadership")
			}
			if a.IsStandout {
				markers = append(markers, "standout")
			}
			if len(markers) > 0 {
				line += " (" + strings.Join(markers, ", ") + ")"
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	if len(snap.Awards) > 0 {
		b.WriteString("\nAWARDS\n")
		for _, a := range snap.Awards {
			fmt.Fprintf(&b, "- %s (%s level)\n", a.Title, a.Tier)
		}
	}

	writeFreeText(&b, "Interests", snap.Interests)
	writeFreeText(&b, "Values", snap.Values)
	writeFreeText(&b, "Aspirations", snap.Aspirations)

	if in.Preferences != nil {
		b.WriteString("\nSTATED PREFERENCES\n")
		writePreference(&b, "Preferred majors", in.Preferences.PreferredMajors)
		writePreference(&b, "Preferred regions", in.Preferences.PreferredRegions)
		writePreference(&b, "School size", in.Preferences.SchoolSize)
		writePreference(&b, "Notes", in.Preferences.AdditionalNotes)
	}

	fmt.Fprintf(&b, "\nCURRENT STAGE: %s\n", in.Stage.Description)
	if len(in.Stage.Priorities) > 0 {
		b.WriteString("Stage priorities:\n")
		for _, p := range in.Stage.Priorities {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	return b.String()
}

func writeFreeText(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "\n%s: %s\n", label, strings.TrimSpace(value))
}

func writePreference(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.TrimSpace(value))
}

// truncateReasoning shortens reasoning text for the consolidation summary.
func truncateReasoning(reasoning string, max int) string {
	reasoning = strings.TrimSpace(reasoning)
	if len(reasoning) <= max {
		return reasoning
	}
	return reasoning[:max] + "..."
}
