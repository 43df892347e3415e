// Package fuzztests houses Go fuzz harnesses for the conversion pipeline
// (source -> lexer -> parser -> rewrite -> printer). Their goal is to smoke
// test robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и переписывание.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
