// Command wpilogdump lists the entries in a wpilog file and, optionally,
// dumps one entry's value timeline to stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	flag "github.com/spf13/pflag"

	"github.com/robolog/wpilog/reader"
	"github.com/robolog/wpilog/value"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	flagSet := flag.NewFlagSet("wpilogdump", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	entry := flagSet.String("entry", "", "dump the value timeline for this entry key instead of listing keys")
	noVersionCheck := flagSet.Bool("no-version-check", false, "accept any file format version")
	requireMagic := flagSet.Bool("require-magic", true, "require the leading WPILOG magic tag")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 2
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		fmt.Fprintln(errOut, "usage: wpilogdump [flags] <file.wpilog>")

		return 2
	}

	data, err := os.ReadFile(positional[0])
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	var opts []reader.Option
	opts = append(opts, reader.WithRequireMagic(*requireMagic))
	if *noVersionCheck {
		opts = append(opts, reader.WithNoVersionCheck())
	}

	r, err := reader.Open(data, opts...)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	if *entry == "" {
		return listKeys(r, out)
	}

	return dumpEntry(r, *entry, out, errOut)
}

func listKeys(r *reader.DataLogReader, out io.Writer) int {
	keys := r.EntryKeys()
	sort.Strings(keys)

	for _, k := range keys {
		status, _ := r.EntryLifeStatus(k)
		state := "dead"
		if status.Alive {
			state = "alive"
		}
		fmt.Fprintf(out, "%s\t%s\tstart=%d end=%d\n", k, state, status.Start, status.End)
	}

	return 0
}

func dumpEntry(r *reader.DataLogReader, key string, out, errOut io.Writer) int {
	values, ok := r.ReadEntry(key)
	if !ok {
		fmt.Fprintln(errOut, "error: no such entry:", key)

		return 1
	}

	for _, tv := range values {
		fmt.Fprintf(out, "%d\t%s\t%s\n", tv.Timestamp, tv.Value.TypeString(), formatValue(tv.Value))
	}

	return 0
}

func formatValue(v value.Value) string {
	switch v.Kind() {
	case value.KindBoolean:
		b, _ := v.AsBoolean()
		return fmt.Sprintf("%t", b)
	case value.KindInt64:
		i, _ := v.AsInt64()
		return fmt.Sprintf("%d", i)
	case value.KindFloat:
		f, _ := v.AsFloat()
		return fmt.Sprintf("%g", f)
	case value.KindDouble:
		d, _ := v.AsDouble()
		return fmt.Sprintf("%g", d)
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindBooleanArray:
		arr, _ := v.AsBooleanArray()
		return fmt.Sprintf("%v", arr)
	case value.KindInt64Array:
		arr, _ := v.AsInt64Array()
		return fmt.Sprintf("%v", arr)
	case value.KindFloatArray:
		arr, _ := v.AsFloatArray()
		return fmt.Sprintf("%v", arr)
	case value.KindDoubleArray:
		arr, _ := v.AsDoubleArray()
		return fmt.Sprintf("%v", arr)
	case value.KindStringArray:
		arr, _ := v.AsStringArray()
		return fmt.Sprintf("%v", arr)
	case value.KindRaw:
		raw, _ := v.AsRaw()
		return fmt.Sprintf("%d bytes", len(raw))
	default:
		return ""
	}
}
