// Package fuzztests houses Go fuzz harnesses that drive arbitrary bytes
// through the query pipeline (source -> lexer -> parser -> rules). The goal
// is to catch panics, hangs and span bookkeeping mistakes on inputs no
// hand-written test thought of.
//
// Назначение: прогонять fuzz-входы через лексер, парсер и движок правил.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
