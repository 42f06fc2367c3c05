package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "FluShot", NormalizeText("  FluShot  "))
	// Decomposed e + combining acute composes to the precomposed form.
	assert.Equal(t, "M\u00e9rieux", NormalizeText("Me\u0301rieux"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, []byte("name,type"), StripBOM([]byte("\ufeffname,type")))
	assert.Equal(t, []byte("name,type"), StripBOM([]byte("name,type")))
}

func TestSplitNameList(t *testing.T) {
	assert.Equal(t, []string{"Acme", "Beta"}, SplitNameList(" Acme ,  Beta "))
	assert.Equal(t, []string{"Acme"}, SplitNameList("Acme,,"))
	assert.Nil(t, SplitNameList("  "))
}

func TestMergeNameLists(t *testing.T) {
	// Novel incoming tokens are appended in their incoming order.
	merged, changed := MergeNameLists("B, C", "A, B")
	assert.True(t, changed)
	assert.Equal(t, "B, C, A", merged)

	// Case-insensitive dedup, stored casing wins.
	merged, changed = MergeNameLists("Acme", "ACME, acme")
	assert.False(t, changed)
	assert.Equal(t, "Acme", merged)

	// Empty incoming never changes anything.
	merged, changed = MergeNameLists("Acme", "")
	assert.False(t, changed)
	assert.Equal(t, "Acme", merged)

	// Incoming into an empty list.
	merged, changed = MergeNameLists("", "Influenza")
	assert.True(t, changed)
	assert.Equal(t, "Influenza", merged)

	// Duplicate tokens within the incoming list collapse.
	merged, changed = MergeNameLists("", "A, a, A")
	assert.True(t, changed)
	assert.Equal(t, "A", merged)
}
