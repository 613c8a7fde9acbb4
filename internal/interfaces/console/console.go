package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"bookarb/internal/application/service"
	"bookarb/internal/domain/book"
)

// pageSize is how many opportunity records one `s` command shows.
const pageSize = 10

// Console is the operator prompt: metrics, a paged tail of the
// opportunity log, and shutdown. Metrics reads are relaxed; operator
// output need not be linearizable.
type Console struct {
	metrics *book.Metrics
	logPath string
	venues  []string
	stop    func()

	in  io.Reader
	out io.Writer

	offset int64 // remembered opportunity-log position
}

func New(metrics *book.Metrics, logPath string, venues []string, stop func()) *Console {
	return &Console{
		metrics: metrics,
		logPath: logPath,
		venues:  venues,
		stop:    stop,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Run reads commands line by line until quit, EOF or cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.printHelp()
	sc := bufio.NewScanner(c.in)
	fmt.Fprint(c.out, "> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch strings.TrimSpace(sc.Text()) {
		case "h", "help":
			c.printHelp()
		case "s", "start":
			c.printOpportunities()
		case "m", "metrics":
			c.printMetrics()
		case "y", "system":
			c.printSystem()
		case "q", "quit":
			c.stop()
			return nil
		case "":
		default:
			fmt.Fprintln(c.out, "Unknown command. Type 'h' for help.")
		}
		fmt.Fprint(c.out, "> ")
	}
	return sc.Err()
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "\nAvailable Commands:\n"+
		"  h, help     - Show this help message\n"+
		"  s, start    - Show next detected opportunities\n"+
		"  m, metrics  - Show performance metrics\n"+
		"  y, system   - Show system status\n"+
		"  q, quit     - Exit the program\n\n")
}

func (c *Console) printMetrics() {
	runtime := time.Since(c.metrics.StartTime)
	updates := c.metrics.UpdatesProcessed.Load()
	opps := c.metrics.OpportunitiesFound.Load()

	fmt.Fprintf(c.out, "\nPerformance Metrics:\n"+
		"Runtime: %d seconds\n"+
		"Updates Processed: %d\n"+
		"Opportunities Found: %d\n",
		int(runtime.Seconds()), updates, opps)

	if opps > 0 {
		fmt.Fprintf(c.out, "Latency (μs):\n"+
			"  Min: %d\n"+
			"  Avg: %d\n"+
			"  Max: %d\n",
			c.metrics.MinLatencyUS.Load(),
			c.metrics.AvgLatencyUS(),
			c.metrics.MaxLatencyUS.Load())
	}
	fmt.Fprintln(c.out)
}

func (c *Console) printSystem() {
	fmt.Fprintf(c.out, "\nSystem:\n"+
		"Started: %s\n"+
		"Venues: %s\n"+
		"Opportunity Log: %s\n\n",
		c.metrics.StartTime.Format(time.RFC3339),
		strings.Join(c.venues, ", "),
		c.logPath)
}

// printOpportunities pages up to pageSize records forward from the
// remembered file offset.
func (c *Console) printOpportunities() {
	f, err := os.Open(c.logPath)
	if err != nil {
		fmt.Fprintf(c.out, "No opportunities yet (%v)\n", err)
		return
	}
	defer f.Close()

	if _, err := f.Seek(c.offset, io.SeekStart); err != nil {
		fmt.Fprintf(c.out, "log seek failed: %v\n", err)
		return
	}

	sc := bufio.NewScanner(f)
	var consumed int64
	records := 0
	for sc.Scan() && records < pageSize {
		line := sc.Text()
		consumed += int64(len(line)) + 1
		fmt.Fprintln(c.out, line)
		if line == service.RecordRule {
			records++
		}
	}
	c.offset += consumed

	if records == 0 {
		fmt.Fprintln(c.out, "No new opportunities.")
	}
}
