package glossary

import "soonish/pkg/future"

// Builtin returns the compiled-in table for a language code, or nil when the
// language has no builtin vocabulary.
func Builtin(language string) *Table {
	switch language {
	case "en":
		return New("en", englishEntries)
	case "es":
		return New("es", spanishEntries)
	}
	return nil
}

// Languages lists the builtin language codes.
func Languages() []string { return []string{"en", "es"} }

var englishEntries = map[string]Results{
	"today":         special(future.Today),
	"tomorrow":      special(future.Tomorrow),
	"tmrw":          special(future.Tomorrow),
	"tomorow":       special(future.Tomorrow),
	"later":         special(future.Later),
	"few":           special(future.Later),
	"a few hours":   special(future.Later),
	"later tonight": special(future.LaterTonight),
	"tonight":       special(future.Tonight),
	"weekend":       special(future.Weekend),
	"this weekend":  special(future.Weekend),
	"next week":     special(future.NextWeek),
	"next month":    special(future.NextMonth),
	"next quarter":  special(future.NextQuarter),
	"next year":     special(future.NextYear),

	"morning":   one(KindHour, 8),
	"noon":      one(KindHour, 12),
	"midday":    one(KindHour, 12),
	"afternoon": one(KindHour, 13),
	"evening":   one(KindHour, 20),
	"night":     one(KindHour, 20),
	"midnight":  one(KindHour, 0),

	"monday":    one(KindWeekday, 0),
	"tuesday":   one(KindWeekday, 1),
	"wednesday": one(KindWeekday, 2),
	"thursday":  one(KindWeekday, 3),
	"friday":    one(KindWeekday, 4),
	"saturday":  one(KindWeekday, 5),
	"sunday":    one(KindWeekday, 6),

	"january":   one(KindMonth, 1),
	"february":  one(KindMonth, 2),
	"march":     one(KindMonth, 3),
	"april":     one(KindMonth, 4),
	"may":       one(KindMonth, 5),
	"june":      one(KindMonth, 6),
	"july":      one(KindMonth, 7),
	"august":    one(KindMonth, 8),
	"september": one(KindMonth, 9),
	"october":   one(KindMonth, 10),
	"november":  one(KindMonth, 11),
	"december":  one(KindMonth, 12),
}

var spanishEntries = map[string]Results{
	"hoy":           special(future.Today),
	"manana":        special(future.Tomorrow),
	"mnn":           special(future.Tomorrow),
	"despues":       special(future.Later),
	"mas tarde":     special(future.Later),
	"esta noche":    special(future.Tonight),
	"finde":         special(future.Weekend),
	"este finde":    special(future.Weekend),
	"fin de semana": special(future.Weekend),

	"siguiente semana":    special(future.NextWeek),
	"proxima semana":      special(future.NextWeek),
	"siguiente mes":       special(future.NextMonth),
	"proximo mes":         special(future.NextMonth),
	"siguiente trimestre": special(future.NextQuarter),
	"proximo trimestre":   special(future.NextQuarter),
	"siguiente ano":       special(future.NextYear),
	"proximo ano":         special(future.NextYear),

	"temprano":   one(KindHour, 8),
	"mediodia":   one(KindHour, 12),
	"siesta":     one(KindHour, 13),
	"a la tarde": one(KindHour, 16),
	"noche":      one(KindHour, 20),
	"medianoche": one(KindHour, 0),

	"lunes":     one(KindWeekday, 0),
	"martes":    one(KindWeekday, 1),
	"miercoles": one(KindWeekday, 2),
	"jueves":    one(KindWeekday, 3),
	"viernes":   one(KindWeekday, 4),
	"sabado":    one(KindWeekday, 5),
	"domingo":   one(KindWeekday, 6),

	"enero":      one(KindMonth, 1),
	"febrero":    one(KindMonth, 2),
	"marzo":      one(KindMonth, 3),
	"abril":      one(KindMonth, 4),
	"mayo":       one(KindMonth, 5),
	"junio":      one(KindMonth, 6),
	"julio":      one(KindMonth, 7),
	"agosto":     one(KindMonth, 8),
	"septiembre": one(KindMonth, 9),
	"octubre":    one(KindMonth, 10),
	"noviembre":  one(KindMonth, 11),
	"diciembre":  one(KindMonth, 12),
}
