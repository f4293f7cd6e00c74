package formatting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/applyforge/internal/types"
)

var threeRefs = []types.Reference{
	{Name: "Alan Grant", Title: "VP Engineering, Initech", Contact: "alan@initech.com"},
	{Name: "Ellie Sattler", Title: "CTO, Hooli", Contact: "ellie@hooli.com"},
	{Name: "Ian Malcolm", Title: "Principal, Chaos Labs", Contact: "ian@chaoslabs.io"},
}

func TestRenderReferencesTable(t *testing.T) {
	block := RenderReferencesTable(threeRefs)

	assert.True(t, strings.HasPrefix(block, referencesStart))
	assert.True(t, strings.HasSuffix(block, referencesEnd))
	assert.Contains(t, block, "<h2>References</h2>")
	for _, ref := range threeRefs {
		assert.Contains(t, block, ref.Name)
		assert.Contains(t, block, ref.Title)
		assert.Contains(t, block, ref.Contact)
	}
	// Odd count pads the last row with an empty cell.
	assert.Equal(t, 2, strings.Count(block, "<tr>"))
	assert.Contains(t, block, "<td></td>")
}

func TestRenderReferencesTable_Empty(t *testing.T) {
	assert.Empty(t, RenderReferencesTable(nil))
}

func TestRenderReferencesTable_EscapesHTML(t *testing.T) {
	block := RenderReferencesTable([]types.Reference{
		{Name: "A <b>B</b>", Title: "T & Co", Contact: "a@b.c"},
	})
	assert.Contains(t, block, "A &lt;b&gt;B&lt;/b&gt;")
	assert.Contains(t, block, "T &amp; Co")
}

func TestEnforceReferencesBlock_RestoresMutatedBlock(t *testing.T) {
	canonical := RenderReferencesTable(threeRefs)
	mutated := referencesStart + "\n<h2>Refs</h2><p>Alan only</p>\n" + referencesEnd
	doc := "<!DOCTYPE html><html><body><h1>Jane</h1>" + mutated + "</body></html>"

	fixed := EnforceReferencesBlock(doc, threeRefs)
	assert.Contains(t, fixed, canonical)
	assert.NotContains(t, fixed, "Alan only")
}

func TestEnforceReferencesBlock_AppendsMissingBlock(t *testing.T) {
	doc := "<!DOCTYPE html><html><body><h1>Jane</h1></body></html>"
	fixed := EnforceReferencesBlock(doc, threeRefs)

	assert.Contains(t, fixed, RenderReferencesTable(threeRefs))
	// Injected inside the body, not after the document end.
	assert.Less(t, strings.Index(fixed, referencesStart), strings.Index(fixed, "</body>"))
}

func TestEnforceReferencesBlock_NoReferences(t *testing.T) {
	doc := "<!DOCTYPE html><html><body></body></html>"
	assert.Equal(t, doc, EnforceReferencesBlock(doc, nil))
}

func TestEnforceReferencesBlock_IntactBlockUnchangedContent(t *testing.T) {
	canonical := RenderReferencesTable(threeRefs)
	doc := "<!DOCTYPE html><html><body>" + canonical + "</body></html>"
	fixed := EnforceReferencesBlock(doc, threeRefs)
	require.Equal(t, doc, fixed)
}
