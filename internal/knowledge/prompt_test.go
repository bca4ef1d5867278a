package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt_CurrentEmploymentExactlyOnce(t *testing.T) {
	prompt := BuildSystemPrompt(Default)

	cur, ok := Default.Current()
	require.True(t, ok)
	assert.Equal(t, 1, strings.Count(prompt, cur.Role), "current role")
	assert.Equal(t, 1, strings.Count(prompt, cur.Company), "current company")
}

func TestBuildSystemPrompt_EveryPastRecordPresent(t *testing.T) {
	prompt := BuildSystemPrompt(Default)

	past := Default.Past()
	require.NotEmpty(t, past)
	for _, exp := range past {
		assert.Contains(t, prompt, exp.Role+" at "+exp.Company+" ("+exp.Period+")")
	}
}

func TestBuildSystemPrompt_PastHighlightsTrimmedToTwo(t *testing.T) {
	prompt := BuildSystemPrompt(Default)

	for _, exp := range Default.Past() {
		require.Greater(t, len(exp.Highlights), pastHighlights)
		assert.Contains(t, prompt, exp.Highlights[0]+"; "+exp.Highlights[1])
		assert.NotContains(t, prompt, exp.Highlights[2])
	}
}

func TestBuildSystemPrompt_ProjectsAchievementsSkills(t *testing.T) {
	prompt := BuildSystemPrompt(Default)

	assert.Contains(t, prompt, "- Agrimate (ML/AI Engineer): A multiplatform app")
	assert.Contains(t, prompt, "Achievements: Top 20 International Microsoft Imagine Cup 2024, Merit Awards APICTA Hong Kong, PKM Funding 2024")
	assert.Contains(t, prompt, "- OPet (Machine Learning Engineer): "+Default.Projects[3].Description+"\n")
	assert.Contains(t, prompt, "- Global Top 100 Finalist from Google Solution Challenge (2023 & 2024)")
	assert.Contains(t, prompt, "ML & Data: TensorFlow, PyTorch, Computer Vision, CNN, Sentiment Analysis, Social Network Analysis")
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildSystemPrompt(Default), BuildSystemPrompt(Default))
}

func TestBuildSystemPrompt_NoCurrentPosition(t *testing.T) {
	b := Base{
		Person: Person{Name: "Ada Lovelace"},
		Experiences: []Experience{
			{Role: "Analyst", Company: "Engine Co", Period: "1843", Type: EmploymentPast, Highlights: []string{"Notes"}},
		},
	}
	prompt := BuildSystemPrompt(b)

	assert.Contains(t, prompt, "### Current Employment\n\n\n### Past Experience")
	assert.Contains(t, prompt, "- Analyst at Engine Co (1843): Notes")
	assert.NotContains(t, prompt, "CURRENT POSITION")
}

func TestBaseHelpers(t *testing.T) {
	assert.Equal(t, []string{"Agrimate", "MainChick", "Peaky Blinder"}, Default.Featured())
	assert.Equal(t, "AI & LLM, Backend & Cloud and ML & Data", joinAnd(categoryNames(Default.Skills)))
	assert.Equal(t, "Daffa", firstName(Default.Person.Name))
	assert.Equal(t, "Mononym", firstName("Mononym"))
}
