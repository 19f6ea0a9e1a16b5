// Package fuzztests houses Go fuzz harnesses over the whole pipeline
// (source -> lexer -> parser -> analyzer). They guard against panics and
// hangs on arbitrary input and check the structural invariants of the
// resulting graph.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// построение графа.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
