package banner

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

type Type string

const (
	TypeError   Type = "error"
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
)

type Props struct {
	ID      string
	Type    Type
	Message string
	Class   string
}

// Banner renders a dismissable status strip above a form or list.
func Banner(props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		classes := twmerge.Merge(
			"banner rounded-md border px-4 py-3 text-sm",
			variantClasses(props.Type),
			props.Class,
		)

		id := ""
		if props.ID != "" {
			id = fmt.Sprintf(` id="%s"`, templ.EscapeString(props.ID))
		}

		_, err := fmt.Fprintf(w,
			`<div%s class="%s" role="alert">%s</div>`,
			id,
			templ.EscapeString(classes),
			templ.EscapeString(props.Message),
		)
		return err
	})
}

func variantClasses(t Type) string {
	switch t {
	case TypeSuccess:
		return "border-green-300 bg-green-50 text-green-800"
	case TypeInfo:
		return "border-blue-300 bg-blue-50 text-blue-800"
	default:
		return "border-red-300 bg-red-50 text-red-800"
	}
}
