package views

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

// Size selects the text size of the Datetime component.
type Size string

const (
	SizeSmall Size = "sm"
	SizeLarge Size = "lg"
)

const (
	dateLayout  = "Jan 2, 2006"
	clockLayout = "03:04 PM"
)

// FormatDatetime picks the modification time when it is later than the
// publish time and formats the chosen instant in loc. iso is always UTC.
func FormatDatetime(pub, mod time.Time, loc *time.Location) (iso, date, clock string) {
	if loc == nil {
		loc = time.UTC
	}
	t := pub
	if !mod.IsZero() && mod.After(pub) {
		t = mod
	}
	local := t.In(loc)
	return t.UTC().Format("2006-01-02T15:04:05.000Z"), local.Format(dateLayout), local.Format(clockLayout)
}

// Datetime renders the calendar icon, the "Updated:" or screen-reader
// "Published:" label and the formatted date and time.
func Datetime(pub, mod time.Time, size Size, class string, loc *time.Location) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		textSize := "text-sm"
		if size == SizeLarge {
			textSize = "text-base"
		}
		iso, date, clock := FormatDatetime(pub, mod, loc)

		cls := "flex items-center space-x-2 opacity-80"
		if class != "" {
			cls += " " + class
		}
		w.raw("<div")
		w.attr("class", cls)
		w.raw(">")
		w.raw(calendarIcon)
		if !mod.IsZero() && mod.After(pub) {
			w.raw(`<span class="italic ` + textSize + `">Updated:</span>`)
		} else {
			w.raw(`<span class="sr-only">Published:</span>`)
		}
		w.raw(`<span class="italic ` + textSize + `">`)
		w.raw("<time")
		w.attr("datetime", iso)
		w.raw(">")
		w.text(date)
		w.raw(`</time><span aria-hidden="true"> | </span><span class="sr-only">&nbsp;at&nbsp;</span><span class="text-nowrap">`)
		w.text(clock)
		w.raw("</span></span></div>")
		return w.err
	})
}

const calendarIcon = `<svg xmlns="http://www.w3.org/2000/svg" class="inline-block h-6 w-6 min-w-[1.375rem]" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" aria-hidden="true"><rect x="3" y="4" width="18" height="18" rx="2"/><path d="M16 2v4M8 2v4M3 10h18"/></svg>`
