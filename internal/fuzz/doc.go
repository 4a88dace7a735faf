// Package fuzztests houses Go fuzz harnesses for the input-facing parts of
// globalint: the C# model builder with the rules on top, and the snapshot
// decoder. Their goal is to guard against panics and hangs on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через csharp.Load и
// rules.Engine, а также через snapshot.Decode.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
