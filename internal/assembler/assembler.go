package assembler

import "container/list"

// Segment is one contiguous slice of a single original file's contents. A
// file smaller than the chunk size is a single segment with StartLine 0;
// a larger file is split across one or more chunks, each subsequent
// segment carrying the number of lines of the original file that precede
// it (the count of newlines in the earlier segments).
type Segment struct {
	Name      string
	Contents  []byte
	StartLine uint32
	FileSize  uint64
	TimeStamp uint64
}

// Chunk is a finished group of segments ready to be serialized. Files
// appear in insertion order; TotalSize is the sum of all segments'
// Contents lengths.
type Chunk struct {
	Files     []Segment
	TotalSize int
}

// EmitFunc receives a finished chunk. It is called synchronously from
// AppendFilePart/Flush whenever a chunk boundary is crossed, mirroring the
// original implementation's direct flushChunk-writes-immediately call.
type EmitFunc func(Chunk) error

// Assembler accumulates file segments and emits Chunks of approximately
// ChunkSize uncompressed bytes each, splitting oversize files on newline
// boundaries per the four-branch rule in spec.md §4.3.
type Assembler struct {
	chunkSize   int
	pending     *list.List
	pendingSize int
	emit        EmitFunc
}

// New creates an Assembler targeting chunkSize uncompressed bytes per
// chunk. emit is invoked once per finished chunk.
func New(chunkSize int, emit EmitFunc) *Assembler {
	return &Assembler{
		chunkSize: chunkSize,
		pending:   list.New(),
		emit:      emit,
	}
}

// PendingSize returns the number of bytes currently queued but not yet
// emitted in a chunk.
func (a *Assembler) PendingSize() int {
	return a.pendingSize
}

// AppendFilePart copies data into a new owning buffer, queues it as a
// pending segment, and flushes complete chunks while the pending queue has
// grown to at least twice the target chunk size.
func (a *Assembler) AppendFilePart(name string, startLine uint32, data []byte, timeStamp, fileSize uint64) error {
	owned := make([]byte, len(data))
	copy(owned, data)

	a.pending.PushBack(&Segment{
		Name:      name,
		Contents:  owned,
		StartLine: startLine,
		FileSize:  fileSize,
		TimeStamp: timeStamp,
	})
	a.pendingSize += len(owned)

	return a.flushIfNeeded()
}

func (a *Assembler) flushIfNeeded() error {
	for a.pendingSize >= 2*a.chunkSize {
		if err := a.flushChunk(a.chunkSize); err != nil {
			return err
		}
	}
	return nil
}

// Flush emits chunks until the pending queue is empty. The final chunk may
// be smaller than the target chunk size.
func (a *Assembler) Flush() error {
	for a.pendingSize > 0 {
		if err := a.flushChunk(a.chunkSize); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) flushChunk(size int) error {
	chunk := Chunk{}

	for chunk.TotalSize < size && a.pending.Len() > 0 {
		front := a.pending.Front()
		seg := front.Value.(*Segment)
		a.pending.Remove(front)

		remaining := size - chunk.TotalSize

		if len(seg.Contents) <= remaining {
			chunk.Files = append(chunk.Files, *seg)
			chunk.TotalSize += len(seg.Contents)
			continue
		}

		appendChunkFilePrefix(&chunk, seg, remaining)
		if len(seg.Contents) > 0 {
			a.pending.PushFront(seg)
		}
		break
	}

	a.pendingSize -= chunk.TotalSize

	if len(chunk.Files) == 0 {
		return nil
	}
	return a.emit(chunk)
}

// appendChunkFilePrefix implements the line-aligned split rule: it searches
// the first `remaining` bytes of seg for the last newline and pushes that
// prefix into the chunk, advancing seg past it. If no newline fits within
// `remaining` and the chunk is still empty (a single line longer than the
// target chunk size), it instead takes the first newline anywhere in seg
// (or the whole of seg if there is none), so a chunk is never emitted with
// zero progress. If the chunk already has content, it makes no change and
// the caller simply re-queues seg unsplit for the next chunk.
func appendChunkFilePrefix(chunk *Chunk, seg *Segment, remaining int) {
	limited := seg.Contents
	if remaining < len(limited) {
		limited = limited[:remaining]
	}
	skipSize, skipLines := skipByLines(limited)

	if skipSize == 0 && len(chunk.Files) != 0 {
		return
	}

	if skipSize == 0 {
		skipSize = skipOneLine(seg.Contents)
		skipLines = 1
		if skipSize == len(seg.Contents) {
			skipLines = 0
		}
	}

	prefixStartLine := seg.StartLine
	prefix := seg.Contents[:skipSize]

	seg.Contents = seg.Contents[skipSize:]
	seg.StartLine += skipLines

	chunk.Files = append(chunk.Files, Segment{
		Name:      seg.Name,
		Contents:  prefix,
		StartLine: prefixStartLine,
		FileSize:  seg.FileSize,
		TimeStamp: seg.TimeStamp,
	})
	chunk.TotalSize += len(prefix)
}

// skipByLines scans data for the last newline and returns one past its
// position plus the total number of newlines seen, or (0, 0) if data
// contains no newline.
func skipByLines(data []byte) (skipSize int, skipLines uint32) {
	for i, b := range data {
		if b == '\n' {
			skipSize = i + 1
			skipLines++
		}
	}
	return skipSize, skipLines
}

// skipOneLine returns one past the position of the first newline in data,
// or len(data) if data contains no newline.
func skipOneLine(data []byte) int {
	for i, b := range data {
		if b == '\n' {
			return i + 1
		}
	}
	return len(data)
}
