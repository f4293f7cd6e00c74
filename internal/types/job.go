package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// JobTarget is one job the user may apply to. Created by CSV import or manual
// entry; mutated only by selection toggling and deletion.
type JobTarget struct {
	ID             string `json:"id"`
	CompanyName    string `json:"companyName"`
	Position       string `json:"position"`
	JobDescription string `json:"jobDescription"`
	Location       string `json:"location,omitempty"`
	WorkType       string `json:"workType,omitempty"`
	Seniority      string `json:"seniority,omitempty"`
	PostedAt       string `json:"postedAt,omitempty"`
	CompanyURL     string `json:"companyUrl,omitempty"`
	Selected       bool   `json:"selected"`
}

// Label returns a short human-readable identifier for progress output.
func (j JobTarget) Label() string {
	return fmt.Sprintf("%s @ %s", j.Position, j.CompanyName)
}

// NewManualJob builds a manually entered job target. Company name and
// position are both required; manual entries start selected.
func NewManualJob(companyName, position, description, location string) (JobTarget, error) {
	companyName = strings.TrimSpace(companyName)
	position = strings.TrimSpace(position)
	if companyName == "" || position == "" {
		return JobTarget{}, fmt.Errorf("manual job entry requires both company name and position")
	}
	return JobTarget{
		ID:             "manual-" + uuid.NewString(),
		CompanyName:    companyName,
		Position:       position,
		JobDescription: strings.TrimSpace(description),
		Location:       strings.TrimSpace(location),
		Selected:       true,
	}, nil
}

// SelectedJobs returns the jobs flagged for generation, preserving order.
func SelectedJobs(jobs []JobTarget) []JobTarget {
	var selected []JobTarget
	for _, j := range jobs {
		if j.Selected {
			selected = append(selected, j)
		}
	}
	return selected
}

// ToggleSelection flips the selected flag of the job with the given ID.
func ToggleSelection(jobs []JobTarget, id string) {
	for i := range jobs {
		if jobs[i].ID == id {
			jobs[i].Selected = !jobs[i].Selected
			return
		}
	}
}

// SetAllSelected marks every job selected or deselected.
func SetAllSelected(jobs []JobTarget, selected bool) {
	for i := range jobs {
		jobs[i].Selected = selected
	}
}

// RemoveJob returns the list with the job of the given ID removed.
func RemoveJob(jobs []JobTarget, id string) []JobTarget {
	out := jobs[:0]
	for _, j := range jobs {
		if j.ID != id {
			out = append(out, j)
		}
	}
	return out
}
