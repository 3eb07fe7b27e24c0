package dom_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/bindparty/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc, err := dom.ParseString(`<div id="app"><p my-text="msg" @click="onClick">{{ msg }}</p><!-- note --><input my-model="name"></div>`)
	require.NoError(t, err)
	assert.Equal(t, dom.DocumentNode, doc.Type)

	app, err := doc.QuerySelector("#app")
	require.NoError(t, err)
	require.NotNil(t, app)

	children := app.ChildNodes()
	require.Len(t, children, 3)
	assert.Equal(t, dom.ElementNode, children[0].Type)
	assert.Equal(t, dom.CommentNode, children[1].Type)
	assert.Equal(t, "input", children[2].Tag)

	assert.Equal(t, []dom.Attribute{
		{Name: "my-text", Value: "msg"},
		{Name: "@click", Value: "onClick"},
	}, children[0].Attributes())
	assert.Equal(t, "{{ msg }}", children[0].TextContent())
	assert.Equal(t, "/html[0]/body[1]/div[0]/p[0]", children[0].Path())
}

func TestTextContent(t *testing.T) {
	p := dom.NewElement("p").Append(
		dom.NewText("a"),
		dom.NewElement("b").Append(dom.NewText("b")),
		dom.NewComment("skipped"),
	)
	assert.Equal(t, "ab", p.TextContent())

	p.SetTextContent("replaced")
	require.Len(t, p.ChildNodes(), 1)
	assert.Equal(t, "replaced", p.TextContent())
	assert.Equal(t, dom.TextNode, p.FirstChild().Type)

	p.SetTextContent("")
	assert.Empty(t, p.ChildNodes())

	text := dom.NewText("x")
	text.SetTextContent("y")
	assert.Equal(t, "y", text.Data)
}

func TestInnerHTML(t *testing.T) {
	div := dom.NewElement("div")
	require.NoError(t, div.SetInnerHTML(`<b>bold</b> & <i>{{ x }}</i>`))

	children := div.ChildNodes()
	require.Len(t, children, 3)
	assert.Equal(t, "b", children[0].Tag)
	assert.Same(t, div, children[0].Parent())
	assert.Equal(t, "bold & {{ x }}", div.TextContent())
	assert.Equal(t, `<b>bold</b> &amp; <i>{{ x }}</i>`, div.InnerHTML())
}

func TestAttributes(t *testing.T) {
	el := dom.NewElement("input", dom.Attribute{Name: "id", Value: "in"})
	el.SetAttribute("my-model", "msg")
	el.SetAttribute("id", "other")
	assert.Equal(t, []dom.Attribute{
		{Name: "id", Value: "other"},
		{Name: "my-model", Value: "msg"},
	}, el.Attributes())

	el.RemoveAttribute("my-model")
	el.RemoveAttribute("absent")
	v, ok := el.GetAttribute("id")
	assert.True(t, ok)
	assert.Equal(t, "other", v)
	_, ok = el.GetAttribute("my-model")
	assert.False(t, ok)
	assert.Equal(t, `<input id="other">`, el.OuterHTML())
}

func TestValue(t *testing.T) {
	input := dom.NewElement("input", dom.Attribute{Name: "value", Value: "initial"})
	assert.Equal(t, "initial", input.Value())

	input.SetValue("typed")
	assert.Equal(t, "typed", input.Value())
	assert.Equal(t, `<input value="typed">`, input.OuterHTML())

	area := dom.NewElement("textarea").Append(dom.NewText("body"))
	assert.Equal(t, "body", area.Value())
	area.SetValue("<new>")
	assert.Equal(t, `<textarea>&lt;new&gt;</textarea>`, area.OuterHTML())
}

func TestEvents(t *testing.T) {
	/*
	   form  (listener)
	    |
	   input (listener x2)
	*/
	form := dom.NewElement("form")
	input := dom.NewElement("input")
	form.AppendChild(input)

	var order []string
	input.AddEventListener("input", func(e dom.Event) error {
		order = append(order, "input 1: "+e.Target.Value())
		return nil
	})
	input.AddEventListener("input", func(e dom.Event) error {
		order = append(order, "input 2")
		return nil
	})
	form.AddEventListener("input", func(e dom.Event) error {
		assert.Same(t, input, e.Target)
		assert.Same(t, form, e.CurrentTarget)
		order = append(order, "form")
		return nil
	})

	require.NoError(t, input.Input("abc"))
	assert.Equal(t, []string{"input 1: abc", "input 2", "form"}, order)
	assert.Equal(t, 2, input.ListenerCount("input"))

	t.Run("errors stop propagation", func(t *testing.T) {
		boom := errors.New("boom")
		button := dom.NewElement("button")
		form.AppendChild(button)
		calls := 0
		button.AddEventListener("click", func(dom.Event) error { return boom })
		form.AddEventListener("click", func(dom.Event) error {
			calls++
			return nil
		})

		assert.ErrorIs(t, button.Click(), boom)
		assert.Equal(t, 0, calls)
	})
}

func TestQuerySelector(t *testing.T) {
	doc, err := dom.ParseString(`<main><div class="card wide" id="a"><span class="x"></span></div><div class="card"></div><input id="name" class="wide"></main>`)
	require.NoError(t, err)

	for _, tc := range []struct {
		sel  string
		want string
	}{
		{"#a", "/html[0]/body[1]/main[0]/div[0]"},
		{"div.card", "/html[0]/body[1]/main[0]/div[0]"},
		{".x", "/html[0]/body[1]/main[0]/div[0]/span[0]"},
		{"input#name.wide", "/html[0]/body[1]/main[0]/input[2]"},
		{"main", "/html[0]/body[1]/main[0]"},
	} {
		t.Run(tc.sel, func(t *testing.T) {
			n, err := doc.QuerySelector(tc.sel)
			require.NoError(t, err)
			require.NotNil(t, n)
			assert.Equal(t, tc.want, n.Path())
		})
	}

	missing, err := doc.QuerySelector("#nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cards, err := doc.QuerySelectorAll(".card")
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	for _, bad := range []string{"", "div p", "a > b", "#", ".", "#a#b", ".a div"} {
		_, err := doc.QuerySelector(bad)
		assert.ErrorIs(t, err, dom.ErrInvalidSelector, bad)
	}
}

func TestRender(t *testing.T) {
	doc, err := dom.ParseString(`<!DOCTYPE html><html><head><style>a > b {}</style></head><body><p title="a&quot;b">x &lt; y</p><br><!--c--></body></html>`)
	require.NoError(t, err)

	assert.Equal(t,
		`<!DOCTYPE html><html><head><style>a > b {}</style></head><body><p title="a&quot;b">x &lt; y</p><br><!--c--></body></html>`,
		doc.OuterHTML(),
	)
}
