// Package follow streams records from a growing JSONL file.
package follow

import (
	"bufio"
	"io"
	stdlog "log"
	"os"
	"sync"

	"github.com/hpcloud/tail"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/logging"
	"github.com/grovetools/jsonlview/pkg/record"
)

var log = logging.NewLogger("follow")

// Options configure a Follower.
type Options struct {
	// Follow keeps reading as lines are appended, like tail -f.
	Follow bool
	// Tail starts at the last Tail records instead of the beginning of the
	// file. Zero reads the whole file.
	Tail int
}

// Follower parses each line of a file into a record as it is read. Lines
// are parsed independently, so a malformed line only yields an error record.
type Follower struct {
	path    string
	t       *tail.Tail
	records chan *record.Record
	stop    chan struct{}
	done    chan struct{}
	err     error

	stopOnce sync.Once
}

// Start opens path and begins reading it in the background.
func Start(path string, opts Options) (*Follower, error) {
	var offset int64
	var first int
	if opts.Tail > 0 {
		var err error
		offset, first, err = lastRecords(path, opts.Tail)
		if err != nil {
			return nil, errors.ReadFailed(path, err)
		}
	}

	cfg := tail.Config{
		Follow:    opts.Follow,
		ReOpen:    opts.Follow,
		MustExist: true,
		Location:  &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		Logger:    stdlog.New(io.Discard, "", 0),
	}
	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}

	f := &Follower{
		path:    path,
		t:       t,
		records: make(chan *record.Record, 64),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go f.run(first)
	return f, nil
}

// Records returns the channel records are delivered on. It is closed when
// the file has been read (without Follow) or after Stop.
func (f *Follower) Records() <-chan *record.Record {
	return f.records
}

// Err returns the error that ended reading, if any. It is valid after the
// Records channel is closed.
func (f *Follower) Err() error {
	<-f.done
	return f.err
}

// Stop ends reading and releases the file.
func (f *Follower) Stop() error {
	var err error
	f.stopOnce.Do(func() {
		close(f.stop)
		// The tail goroutine blocks on unread lines; drain them so it can exit.
		go func() {
			for range f.t.Lines {
			}
		}()
		err = f.t.Stop()
		f.t.Cleanup()
	})
	<-f.done
	return err
}

func (f *Follower) run(index int) {
	defer close(f.done)
	defer close(f.records)

	for line := range f.t.Lines {
		if line.Err != nil {
			f.err = errors.ReadFailed(f.path, line.Err)
			log.WithError(line.Err).Warn("Read failed")
			return
		}
		if record.IsBlank(line.Text) {
			continue
		}
		select {
		case f.records <- record.ParseLine(index, line.Text):
		case <-f.stop:
			return
		}
		index++
	}
}

// lastRecords finds where the last n records of path start. It returns the
// byte offset and the index of the first of those records.
func lastRecords(path string, n int) (int64, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	var starts []int64
	var offset int64
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if line != "" && !record.IsBlank(line) {
			starts = append(starts, offset)
		}
		offset += int64(len(line))
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}
	}

	if len(starts) <= n {
		return 0, 0, nil
	}
	first := len(starts) - n
	return starts[first], first, nil
}
