// internal/intent/params.go
package intent

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is the closed set of relative time-range shorthands the model may
// emit under the "periodo" parameter.
type Period string

const (
	PeriodMes           Period = "mes"
	PeriodMesAnterior   Period = "mes_anterior"
	PeriodMesSiguiente  Period = "mes_siguiente"
	PeriodAnioActual    Period = "año_actual"
	PeriodAnioAnterior  Period = "año_anterior"
	PeriodAnioSiguiente Period = "año_siguiente"
)

const (
	dayFormat   = "2006-01-02"
	monthFormat = "2006-01"
	yearFormat  = "2006"
)

const periodKey = "periodo"

// CanonicalizeParams resolves relative temporal tokens in a parameter map
// against the supplied reference date and returns a new map. It is total:
// unrecognized values pass through verbatim and only string values are
// eligible for date-token substitution.
func CanonicalizeParams(params map[string]any, today time.Time) map[string]any {
	out := make(map[string]any, len(params))
	dayTokens := map[string]string{
		"hoy":    today.Format(dayFormat),
		"ayer":   today.AddDate(0, 0, -1).Format(dayFormat),
		"mañana": today.AddDate(0, 0, 1).Format(dayFormat),
	}

	for key, value := range params {
		if strings.EqualFold(strings.TrimSpace(key), periodKey) {
			expandPeriod(out, key, value, today)
			continue
		}
		if s, ok := value.(string); ok {
			if day, ok := dayTokens[strings.ToLower(strings.TrimSpace(s))]; ok {
				out[key] = day
				continue
			}
		}
		out[key] = value
	}
	return out
}

// expandPeriod consumes the periodo key: a recognized value inserts a key
// named after the matched period holding the absolute calendar value; an
// unrecognized value keeps the original key with the cleaned value. Month
// arithmetic is anchored at the first of the month so month-length
// differences cannot shift the result.
func expandPeriod(out map[string]any, key string, value any, today time.Time) {
	cleaned := strings.ToLower(strings.TrimSpace(fmt.Sprint(value)))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	switch Period(cleaned) {
	case PeriodMes:
		out["mes_actual"] = today.Format(monthFormat)
	case PeriodMesAnterior:
		out["mes_anterior"] = monthStart.AddDate(0, -1, 0).Format(monthFormat)
	case PeriodMesSiguiente:
		out["mes_siguiente"] = monthStart.AddDate(0, 1, 0).Format(monthFormat)
	case PeriodAnioActual:
		out["año_actual"] = today.Format(yearFormat)
	case PeriodAnioAnterior:
		out["año_anterior"] = strconv.Itoa(today.Year() - 1)
	case PeriodAnioSiguiente:
		out["año_siguiente"] = strconv.Itoa(today.Year() + 1)
	default:
		out[key] = cleaned
	}
}
