// Package packcache memoizes packreader.ReadFileList extraction in a
// SQLite database, keyed by the pack file's own modification time and
// size. The watch command reads the same pack's file list on every restart; a
// large pack's file table can still span many chunks, and re-decompressing
// every chunk's header prefix on every process start is wasted work once
// the pack itself hasn't changed since the last run.
package packcache
