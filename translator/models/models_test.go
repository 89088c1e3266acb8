package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindDocumentation, Classify("_documentation/en/sms/intro.md"))
	assert.Equal(t, KindUseCase, Classify("_use_cases/en/reminders.md"))
	assert.Equal(t, KindTutorial, Classify("_tutorials/en/send-sms.md"))
	assert.Equal(t, KindUnknown, Classify("README.md"))

	// documentation wins, then use cases
	assert.Equal(t, KindDocumentation, Classify("_tutorials/_documentation/x.md"))
	assert.Equal(t, KindUseCase, Classify("_tutorials/_use_cases/x.md"))
}

func TestContentKind_String(t *testing.T) {
	assert.Equal(t, "documentation", KindDocumentation.String())
	assert.Equal(t, "use_case", KindUseCase.String())
	assert.Equal(t, "tutorial", KindTutorial.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestProductAllowList(t *testing.T) {
	l := NewProductAllowList([]string{" sms ", "voice", "", "sms", "numbers"})

	assert.Equal(t, []string{"sms", "voice", "numbers"}, l.Items())
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains("sms"))
	assert.False(t, l.Contains("sm"))
	assert.Equal(t, "numbers,sms,voice", l.String())

	p, ok := l.Matches("messaging/sms-api")
	assert.True(t, ok)
	assert.Equal(t, "sms", p)
	_, ok = l.Matches("widgets")
	assert.False(t, ok)

	assert.True(t, l.Intersects([]string{"widgets", "voice"}))
	assert.False(t, l.Intersects([]string{"widgets"}))
	assert.False(t, l.Intersects(nil))

	items := l.Items()
	items[0] = "changed"
	assert.Equal(t, "sms", l.Items()[0])
}

func TestProducts_Allowed(t *testing.T) {
	l := NewProductAllowList(DefaultAllowedProducts)

	assert.False(t, Products{}.Allowed(l))
	assert.True(t, Products{Values: []string{"widgets", "voice"}, Present: true}.Allowed(l))
	assert.False(t, Products{Values: []string{"widgets"}, Present: true}.Allowed(l))
	assert.False(t, Products{Values: []string{"messaging/sms"}, Present: true}.Allowed(l))
	assert.True(t, Products{Values: []string{"messaging/sms"}, Present: true, Scalar: true}.Allowed(l))
}

func TestPrerequisiteRef_Path(t *testing.T) {
	assert.Equal(t, "foo/en/bar.md", NewPrerequisiteRef("foo", "bar").Path())
	assert.Equal(t, "_tutorials/en/bar.md", NewPrerequisiteRef("", "bar").Path())
	assert.Equal(t, "_use_cases/en/bar.md", NewPrerequisiteRef("content/_use_cases/", "bar").Path())
	assert.Equal(t, "_tutorials/en/bar.md", PrerequisiteRef{Name: "bar"}.Path())
}

func TestNewTutorialItem(t *testing.T) {
	item := NewTutorialItem("empty", nil, Tutorial{})

	assert.NotNil(t, item.Products)
	assert.NotNil(t, item.Tutorial.Prerequisites)
	assert.NotNil(t, item.Tutorial.Tasks)
	assert.Equal(t, "", item.ProductsString())

	item = NewTutorialItem("voice", []string{"voice", "tools"}, Tutorial{Tasks: []string{"baz"}})
	assert.Equal(t, "voice tools", item.ProductsString())
	assert.Equal(t, "_tutorials/en/baz.md", TaskPath(item.Tutorial.Tasks[0]))
}

func TestReport(t *testing.T) {
	var nilReport *Report
	assert.Equal(t, "", nilReport.Fingerprint())
	assert.Empty(t, nilReport.CountByKind())

	a := &Report{Eligible: []string{"a", "b"}}
	b := &Report{Eligible: []string{"a", "b"}}
	c := &Report{Eligible: []string{"a"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	r := &Report{Decisions: []Decision{
		{Path: "d", Kind: KindDocumentation, Eligible: true},
		{Path: "t1", Kind: KindTutorial, Eligible: true},
		{Path: "t2", Kind: KindTutorial, Eligible: true},
		{Path: "u", Kind: KindUseCase, Eligible: false},
	}}
	counts := r.CountByKind()
	assert.Equal(t, 1, counts[KindDocumentation])
	assert.Equal(t, 2, counts[KindTutorial])
	assert.Equal(t, 0, counts[KindUseCase])
}
