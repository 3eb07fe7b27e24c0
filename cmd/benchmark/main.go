package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/delaneyj/bindparty/dom"
	"github.com/delaneyj/bindparty/reactive"
	"github.com/delaneyj/bindparty/vm"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var profile = flag.String("cpuprofile", "", "write a CPU profile to this file")

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkFanOut(false)
	benchmarkBindings(false)

	benchmarkFanOut(true)
	benchmarkBindings(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100
)

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "updates/s"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, updates int, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	rate := 0.0
	if calc.Time.Avg > 0 {
		rate = float64(updates) / calc.Time.Avg.Seconds()
	}
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
		humanize.Comma(int64(rate)),
	})
}

// benchmarkFanOut writes the source key of an object read by w chains of
// h watchers. Each watcher copies the key it reads into the next key of its
// chain, so one write runs w * h updates.
func benchmarkFanOut(shouldRender bool) {
	tbl := newTable("Dep fan-out")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			fields := reactive.Fields{{Key: "src", Value: 0}}
			for i := 0; i < w; i++ {
				for j := 0; j < h; j++ {
					fields = append(fields, reactive.Field{Key: link(i, j), Value: 0})
				}
			}
			data := reactive.Observe(nil, fields)

			seen := 0
			for i := 0; i < w; i++ {
				prev := "src"
				for j := 0; j < h; j++ {
					next := link(i, j)
					reactive.NewWatcher(data, prev, func(value any) error {
						seen++
						return data.Set(next, value)
					})
					prev = next
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := data.Set("src", i+1); err != nil {
					log.Panic(err)
				}
				tach.AddTime(time.Since(start))
			}
			if seen != w*h*iters {
				log.Panicf("fan-out %d * %d: saw %d updates, want %d", w, h, seen, w*h*iters)
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), w*h, tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func link(chain, depth int) string {
	return fmt.Sprintf("c%d_%d", chain, depth)
}

// benchmarkBindings compiles w text bindings against one key and times the
// write that refreshes them all.
func benchmarkBindings(shouldRender bool) {
	tbl := newTable("Text bindings")

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		var sb strings.Builder
		sb.WriteString(`<div id="app">`)
		for i := 0; i < w; i++ {
			sb.WriteString(`<p>{{ msg }}</p>`)
		}
		sb.WriteString(`</div>`)

		doc, err := dom.ParseString(sb.String())
		if err != nil {
			log.Panic(err)
		}
		v, err := vm.New(vm.Options{
			Data:     map[string]any{"msg": ""},
			El:       "#app",
			Document: doc,
		})
		if err != nil {
			log.Panic(err)
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			if err := v.Set("msg", fmt.Sprint(i)); err != nil {
				log.Panic(err)
			}
			tach.AddTime(time.Since(start))
		}

		appendCalc(tbl, fmt.Sprintf("text: %d", w), w, tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
