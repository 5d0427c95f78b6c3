package htmlcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasVisibleContent(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{
			name: "plain text",
			doc:  `<html><body><p>Welcome</p></body></html>`,
			want: true,
		},
		{
			name: "image only",
			doc:  `<html><body><img src="hero.jpg"></body></html>`,
			want: true,
		},
		{
			name: "inline svg only",
			doc:  `<html><body><svg viewBox="0 0 1 1"></svg></body></html>`,
			want: true,
		},
		{
			name: "empty body",
			doc:  `<html><body></body></html>`,
			want: false,
		},
		{
			name: "whitespace only",
			doc:  "<html><body>\n\t  \n</body></html>",
			want: false,
		},
		{
			name: "script text does not count",
			doc:  `<html><body><script>console.log("hi")</script></body></html>`,
			want: false,
		},
		{
			name: "style text does not count",
			doc:  `<html><body><style>p{color:red}</style></body></html>`,
			want: false,
		},
		{
			name: "title text does not count",
			doc:  `<html><head><title>Acme</title></head><body></body></html>`,
			want: false,
		},
		{
			name: "bare fragment",
			doc:  `<section id="hero"><h1>Hello</h1></section>`,
			want: true,
		},
		{
			name: "empty string",
			doc:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasVisibleContent(tt.doc))
		})
	}
}
