// Package template renders consultation messages from the static per-locale
// template set. Rendering is a pure function of its inputs and never fails:
// placeholders without a value are left as literal text so a partially
// customized template still produces a sendable message.
package template

import (
	"encoding/json"
	"strings"
	"time"

	"meditour_admin/internal/i18n"
)

// RenderData carries the per-reservation values substituted into a template.
type RenderData struct {
	HospitalName    string
	ProcedureName   string
	ReservationDate time.Time
	ReservationTime string // HH:MM, copied verbatim
	DepositAmount   int64
	Currency        string
	PaymentDeadline time.Time
	Reason          string // cancellation only
}

// Overrides are the optional admin-supplied customizations. FullTemplate
// replaces the base template wholesale; the section fields replace fixed
// regions of the guide template and are ignored for other kinds.
type Overrides struct {
	FullTemplate string
	GuideText    string
	Details      string
	Notice       string
	ButtonText   string
}

type Engine struct {
	set Set
}

func New(set Set) *Engine { return &Engine{set: set} }

// Render selects the (kind, locale) base template, substitutes every {name}
// placeholder, then applies the structural section overrides for the guide
// kind. Unknown placeholders are left untouched.
func (e *Engine) Render(kind Kind, loc i18n.Locale, data RenderData, ov Overrides) string {
	lt := e.set.forLocale(loc)

	tpl := e.base(kind, lt)
	if ov.FullTemplate != "" {
		tpl = ov.FullTemplate
	}

	out := substitute(tpl, e.variables(loc, lt, data, ov))

	if kind == KindGuide {
		out = applySectionOverrides(out, lt.Markers, ov)
	}
	return out
}

func (e *Engine) base(kind Kind, lt LocaleTemplates) string {
	switch kind {
	case KindConfirmation:
		return lt.Confirmation
	case KindCancellation:
		return lt.Cancellation
	default:
		return lt.Guide
	}
}

// variables computes the full placeholder vocabulary. The custom fields are
// exposed as variables too so a full-template override can place them freely.
func (e *Engine) variables(loc i18n.Locale, lt LocaleTemplates, data RenderData, ov Overrides) map[string]string {
	button := ov.ButtonText
	if button == "" {
		button = lt.DefaultButton
	}
	return map[string]string{
		"hospitalName":    data.HospitalName,
		"procedureName":   data.ProcedureName,
		"date":            i18n.ShortDate(loc, data.ReservationDate),
		"dayOfWeek":       i18n.DayOfWeek(loc, data.ReservationDate),
		"time":            data.ReservationTime,
		"amount":          i18n.FormatAmount(data.DepositAmount, data.Currency),
		"currency":        data.Currency,
		"deadline":        i18n.LongDate(loc, data.PaymentDeadline),
		"reason":          data.Reason,
		"customGuideText": ov.GuideText,
		"customDetails":   ov.Details,
		"customNotice":    ov.Notice,
		"buttonText":      button,
	}
}

// substitute walks the template once, left to right. Each {name} token is
// looked up exactly once and its value copied through verbatim, so a value
// that itself contains brace-shaped text is never re-expanded.
func substitute(tpl string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(tpl))
	for {
		open := strings.IndexByte(tpl, '{')
		if open < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		end := strings.IndexByte(tpl[open:], '}')
		if end < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		end += open
		// A stray '{' before the closing brace: the token starts at the
		// innermost one.
		if i := strings.LastIndexByte(tpl[open:end], '{'); i > 0 {
			open += i
		}
		name := tpl[open+1 : end]
		val, ok := vars[name]
		if !ok {
			// Unknown placeholder stays as literal text.
			b.WriteString(tpl[:end+1])
			tpl = tpl[end+1:]
			continue
		}
		b.WriteString(tpl[:open])
		b.WriteString(val)
		tpl = tpl[end+1:]
	}
}

// applySectionOverrides performs the three region replacements by locating
// the literal markers and slicing by index. A marker that does not occur in
// the (possibly fully overridden) template makes that replacement a no-op.
func applySectionOverrides(msg string, mk SectionMarkers, ov Overrides) string {
	if ov.GuideText != "" {
		msg = replaceBetween(msg, mk.IntroStart, mk.DepositSentence, ov.GuideText+"\n")
	}
	if ov.Details != "" {
		start := strings.Index(msg, mk.DetailsHeader)
		if start >= 0 {
			rest := msg[start+len(mk.DetailsHeader):]
			end := len(msg)
			if i := strings.Index(rest, mk.NotesHeader); i >= 0 {
				end = start + len(mk.DetailsHeader) + i
			}
			msg = msg[:start] + mk.DetailsHeader + "\n" + ov.Details + "\n\n" + msg[end:]
		}
	}
	if ov.Notice != "" {
		if start := strings.Index(msg, mk.NotesHeader); start >= 0 {
			msg = msg[:start] + mk.NotesHeader + "\n" + ov.Notice
		}
	}
	return msg
}

// replaceBetween swaps the region [from, to) for repl, where from and to are
// literal markers. The end marker itself is preserved.
func replaceBetween(msg, from, to, repl string) string {
	start := strings.Index(msg, from)
	if start < 0 {
		return msg
	}
	end := strings.Index(msg[start:], to)
	if end < 0 {
		return msg
	}
	return msg[:start] + repl + msg[start+end:]
}

// ButtonLabel resolves the payment-button label: the override when present,
// otherwise the locale's default from the template set.
func (e *Engine) ButtonLabel(loc i18n.Locale, override string) string {
	if override != "" {
		return override
	}
	return e.set.forLocale(loc).DefaultButton
}

// PaymentDescriptor describes the payment action a downstream renderer turns
// into a button. It is embedded in the message text, not processed here.
type PaymentDescriptor struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Label    string `json:"label"`
	Deadline string `json:"deadline"`
}

// AppendPaymentMarker serializes the descriptor and appends it as a delimited
// trailing block. Plain concatenation: the marker never goes through
// placeholder substitution.
func AppendPaymentMarker(msg string, d PaymentDescriptor) string {
	b, _ := json.Marshal(d)
	return msg + "\n\n<payment>" + string(b) + "</payment>"
}
