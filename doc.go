// Package notemark segments text containing inline style directives and renders the
// result for terminals and HTML.
//
// A directive has the form $(content, classes): the content is any text without a
// comma, the class list any text without a closing parenthesis. Parse splits input into
// plain and styled segments that cover it without gaps or overlap. Anything that is not
// a well-formed directive stays plain text; parsing never fails.
//
// Rendering is a projection of the segment list through a Sink, so the terminal and
// HTML outputs always agree on what is styled.
//
// Example:
//
//	segs := notemark.Parse("Hello $(world, text-red-500 font-bold)")
//	fmt.Println(notemark.RenderHTML(segs))
//	// Hello <span class="text-red-500 font-bold">world</span>
//
//	err := notemark.Render(notemark.RenderRequest{
//		Reader: strings.NewReader("Hello $(world, text-red-500 font-bold)"),
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  notemark.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Class names follow utility CSS conventions (font-bold, italic, underline,
// text-red-500, bg-sky-100, ...). In HTML output the class list is passed through
// unchanged; the terminal renderer maps the names it knows to SGR attributes and
// ignores the rest.
package notemark
