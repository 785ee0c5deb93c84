package network

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// A recording is a zstd compressed stream of JSON lines: one header followed
// by one line per inbound frame.

type recordingHeader struct {
	ID      string    `json:"id"`
	Started time.Time `json:"started"`
}

type recordedLine struct {
	OffsetMS int64  `json:"offsetMs"`
	Data     string `json:"data"`
}

// Recorder appends inbound frames to a recording. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	id      uuid.UUID
	started time.Time
	now     func() time.Time
	enc     *zstd.Encoder
	closer  io.Closer
}

// CreateRecorder creates a recording file at path.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording file: %v", err)
	}
	r, err := NewRecorder(f, time.Now)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

func NewRecorder(w io.Writer, now func() time.Time) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	r := &Recorder{
		id:      uuid.New(),
		started: now(),
		now:     now,
		enc:     enc,
	}
	if err := r.writeLine(recordingHeader{ID: r.id.String(), Started: r.started}); err != nil {
		enc.Close()
		return nil, err
	}
	// push the header out now so an unwritable destination fails here
	if err := enc.Flush(); err != nil {
		enc.Close()
		return nil, fmt.Errorf("failed to write recording header: %v", err)
	}
	return r, nil
}

func (r *Recorder) ID() uuid.UUID {
	return r.id
}

func (r *Recorder) Record(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLine(recordedLine{
		OffsetMS: r.now().Sub(r.started).Milliseconds(),
		Data:     string(frame),
	})
}

func (r *Recorder) writeLine(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal recording line: %v", err)
	}
	b = append(b, '\n')
	if _, err := r.enc.Write(b); err != nil {
		return fmt.Errorf("failed to write recording line: %v", err)
	}
	return nil
}

// Close flushes the recording and closes the underlying file, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %v", err)
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

type RecordedFrame struct {
	Offset time.Duration
	Data   []byte
}

type Recording struct {
	ID      uuid.UUID
	Started time.Time
	Frames  []RecordedFrame
}

// OpenRecording reads the recording file at path.
func OpenRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording file: %v", err)
	}
	defer f.Close()
	return ReadRecording(f)
}

func ReadRecording(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer dec.Close()

	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), DefaultReadLimit*2)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read recording header: %v", err)
		}
		return nil, fmt.Errorf("recording is empty")
	}
	header := recordingHeader{}
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recording header: %v", err)
	}
	id, err := uuid.Parse(header.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid recording id %q: %v", header.ID, err)
	}

	rec := &Recording{ID: id, Started: header.Started}
	for scanner.Scan() {
		line := recordedLine{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recorded frame %d: %v", len(rec.Frames), err)
		}
		rec.Frames = append(rec.Frames, RecordedFrame{
			Offset: time.Duration(line.OffsetMS) * time.Millisecond,
			Data:   []byte(line.Data),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recording: %v", err)
	}
	return rec, nil
}
