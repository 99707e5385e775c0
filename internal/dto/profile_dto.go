package dto

import (
	"encoding/json"
	"strings"
)

// SkillList accepts either a JSON array of strings or a single
// comma-separated string, normalizing to trimmed, deduplicated entries.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		raw = strings.Split(single, ",")
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, skill := range raw {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	*s = out
	return nil
}

type UpdateProfileRequest struct {
	Fullname     *string    `json:"fullname"`
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Email        *string    `json:"email"`
	Username     *string    `json:"username"`
	Phone        *string    `json:"phone"`
	Language     *string    `json:"language"`
	Pic          *string    `json:"pic"`
	Education    *string    `json:"education"`
	Occupation   *string    `json:"occupation"`
	CompanyName  *string    `json:"companyName"`
	Availability *string    `json:"availability"`
	HourlyRate   *string    `json:"hourlyRate"`
	Skills       *SkillList `json:"skills"`
	Bio          *string    `json:"bio"`
	Location     *string    `json:"location"`
}

type ProfileResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Username     *string  `json:"username"`
	FirstName    *string  `json:"first_name"`
	LastName     *string  `json:"last_name"`
	Fullname     *string  `json:"fullname"`
	Education    *string  `json:"education"`
	Occupation   *string  `json:"occupation"`
	CompanyName  *string  `json:"companyName"`
	Phone        *string  `json:"phone"`
	Language     string   `json:"language"`
	Availability *string  `json:"availability"`
	HourlyRate   *string  `json:"hourlyRate"`
	Skills       []string `json:"skills"`
	Bio          *string  `json:"bio"`
	Location     *string  `json:"location"`
	Pic          *string  `json:"pic"`
}
