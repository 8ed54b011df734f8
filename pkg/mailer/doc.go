// Package mailer renders notification emails and hands them to a delivery
// provider.
//
// [Sender] is implemented by delivery providers (see the smtp and resend
// subpackages). [Renderer] executes a named template from an [fs.FS]:
// <name>.html is required and parsed with html/template, <name>.txt is an
// optional plain text alternative.
//
// Templates may call two helper functions:
//
//	{{markdown .Content}}  renders markdown to sanitized HTML
//	{{nl2br .Content}}     escapes text and turns newlines into <br>
//
// The markdown renderer understands a button link extension:
//
//	[!button|Open dashboard](https://example.com/dashboard)
//
// A default "email_template" ships embedded in the package; see [DefaultTemplates].
package mailer
