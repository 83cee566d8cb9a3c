package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullAggregate() *ProfileAggregate {
	return &ProfileAggregate{
		Profile: CandidateProfile{
			FullName:           "Asha Verma",
			Email:              "asha@example.com",
			Phone:              "+919900112233",
			Location:           "Bengaluru",
			WorkStatus:         string(WorkStatusExperienced),
			AvailabilityToJoin: "1_MONTH",
			Summary:            "Backend engineer",
			ResumeKey:          "resumes/x/cv.pdf",
		},
		Skills:      []CandidateSkill{{Name: "Go"}},
		Employments: []CandidateEmployment{{Company: "Acme"}},
		Educations:  []CandidateEducation{{Degree: "B.Tech"}},
		Projects:    []CandidateProject{{Title: "Search service"}},
	}
}

func TestCalculateCompletion(t *testing.T) {
	t.Run("empty profile scores zero with all items missing", func(t *testing.T) {
		percent, missing := CalculateCompletion(&ProfileAggregate{})
		assert.Equal(t, 0, percent)
		assert.Len(t, missing, 12)
	})

	t.Run("complete profile scores 100 with nothing missing", func(t *testing.T) {
		percent, missing := CalculateCompletion(fullAggregate())
		assert.Equal(t, 100, percent)
		assert.Empty(t, missing)
	})

	t.Run("weights match the published table", func(t *testing.T) {
		_, missing := CalculateCompletion(&ProfileAggregate{})
		weights := map[string]int{}
		total := 0
		for _, m := range missing {
			weights[m.Key] = m.Percent
			total += m.Percent
		}
		// raw weights overshoot; the score is capped at 100
		assert.Equal(t, 105, total)
		assert.Equal(t, 15, weights["summary"])
		assert.Equal(t, 15, weights["skills"])
		assert.Equal(t, 15, weights["employment"])
		assert.Equal(t, 15, weights["education"])
		assert.Equal(t, 10, weights["resume"])
		assert.Equal(t, 5, weights["projects"])
		assert.Equal(t, 5, weights["personal_full_name"])
	})

	t.Run("dropping heavy sections lands below the searchable floor", func(t *testing.T) {
		agg := fullAggregate()
		agg.Profile.Summary = ""
		agg.Profile.ResumeKey = ""
		agg.Skills = nil

		percent, missing := CalculateCompletion(agg)
		assert.Equal(t, 65, percent)
		assert.Len(t, missing, 3)

		agg.Projects = nil
		percent, _ = CalculateCompletion(agg)
		assert.Equal(t, MinSearchableCompletion, percent)

		agg.Employments = nil
		percent, _ = CalculateCompletion(agg)
		assert.Less(t, percent, MinSearchableCompletion)
	})

	t.Run("missing details keep table order", func(t *testing.T) {
		_, missing := CalculateCompletion(&ProfileAggregate{})
		assert.Equal(t, "personal_full_name", missing[0].Key)
		assert.Equal(t, "Upload resume", missing[len(missing)-1].Label)
	})
}
