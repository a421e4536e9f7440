package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSections_SectionsAndSubsections(t *testing.T) {
	md := "# Seller Guide\n" +
		"\n" +
		"## Listing Rules\n" +
		"Rules body line one.\n" +
		"Rules body line two.\n" +
		"\n" +
		"### Prohibited Items\n" +
		"No counterfeit goods.\n" +
		"\n" +
		"## Fees\n" +
		"Commission is 10 percent.\n"

	sections := ExtractSections(md)
	require.Len(t, sections, 3)

	assert.Equal(t, "Listing Rules", sections[0].Section)
	assert.Equal(t, "", sections[0].Subsection)
	assert.Equal(t, "Rules body line one.\nRules body line two.", sections[0].Text)
	assert.Equal(t, 4, sections[0].StartLine)
	assert.Equal(t, 6, sections[0].EndLine)

	assert.Equal(t, "Listing Rules", sections[1].Section)
	assert.Equal(t, "Prohibited Items", sections[1].Subsection)
	assert.Equal(t, "No counterfeit goods.", sections[1].Text)
	assert.Equal(t, 8, sections[1].StartLine)
	assert.Equal(t, 9, sections[1].EndLine)

	assert.Equal(t, "Fees", sections[2].Section)
	assert.Equal(t, "", sections[2].Subsection)
	assert.Equal(t, "Commission is 10 percent.", sections[2].Text)
}

func TestExtractSections_IntroBeforeFirstSectionDropped(t *testing.T) {
	md := "# Title\n" +
		"This intro has no level-2 heading above it.\n" +
		"\n" +
		"## Returns\n" +
		"Returns are accepted within 30 days.\n"

	sections := ExtractSections(md)
	require.Len(t, sections, 1)
	assert.Equal(t, "Returns", sections[0].Section)
	assert.Equal(t, "Returns are accepted within 30 days.", sections[0].Text)
}

func TestExtractSections_NoHeadingsFallsBackToGeneral(t *testing.T) {
	md := "Plain text without any headings.\nSecond line.\n"

	sections := ExtractSections(md)
	require.Len(t, sections, 1)
	assert.Equal(t, "General", sections[0].Section)
	assert.Equal(t, "", sections[0].Subsection)
	assert.Equal(t, "Plain text without any headings.\nSecond line.", sections[0].Text)
	assert.Equal(t, 1, sections[0].StartLine)
	assert.Equal(t, 3, sections[0].EndLine)
}

func TestExtractSections_EmptySectionBodySkipped(t *testing.T) {
	md := "## Empty Section\n" +
		"\n" +
		"## Shipping\n" +
		"Ships within 2 days.\n"

	sections := ExtractSections(md)
	require.Len(t, sections, 1)
	assert.Equal(t, "Shipping", sections[0].Section)
}

func TestExtractSections_SubsectionResetOnNewSection(t *testing.T) {
	md := "## Payments\n" +
		"### Payout Schedule\n" +
		"Weekly payouts.\n" +
		"## Disputes\n" +
		"Open a dispute within 14 days.\n"

	sections := ExtractSections(md)
	require.Len(t, sections, 2)
	assert.Equal(t, "Payments", sections[0].Section)
	assert.Equal(t, "Payout Schedule", sections[0].Subsection)
	assert.Equal(t, "Disputes", sections[1].Section)
	assert.Equal(t, "", sections[1].Subsection)
}
