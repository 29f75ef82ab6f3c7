// Package audit is the engine's append-only action trail and its reader.
//
// Log writes one tab-separated line per engine operation through a dedicated
// zap core whose writer opens the file for each append:
//
//	2026-10-16T09:12:44.120+0200	INFO	command=create-file user=jiya File 'a.txt' created.
//	2026-10-16T09:12:51.007+0200	WARN	command=delete-file user=jiya Permission denied: Only admin can delete files.
//	2026-10-16T09:13:02.311+0200	ERROR	command=read-file user=jiya 'b.txt' not found.
//
// Denials are WARN, failures are ERROR, everything else INFO. Newlines in
// messages are escaped so each record stays on one line.
//
// Summarize reads such a file back and tallies command markers, user markers
// and error lines.
package audit
