///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

// Command winfile manipulates files through Windows-style handles.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile"
	"gitlab.com/elixxir/winfile/internal/config"
)

const usage = `Usage: winfile [-config FILE] <command> [arguments]

Commands:
  init [-force] [FILE]           write a default configuration file
  cat FILE                       print the contents of FILE
  write [-disposition D] FILE    copy standard input into FILE
  size FILE                      print the size of FILE in bytes
  truncate FILE SIZE             truncate or extend FILE to SIZE bytes
  touch [-time T] FILE           set the access and write times of FILE
  lock [-shared] [-wait] [-hold D] FILE
                                 take an advisory lock on FILE
  stat FILE                      print what a handle on FILE reports
`

func main() {
	configPath := flag.String("config", "", "Path to the configuration file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	stdout, err := winfile.GetStdHandle(winfile.StdOutputHandle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "winfile: %v\n", err)
		os.Exit(1)
	}

	if err = run(*configPath, flag.Args(), os.Stdin, stdout); err != nil {
		fmt.Fprintf(os.Stderr, "winfile: %v (error %d)\n", err,
			winfile.Code(err))
		os.Exit(1)
	}
}

// run executes the command in args with its output written to out.
func run(configPath string, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command given; run winfile -h for help")
	}

	// init must work without a valid configuration
	if args[0] == "init" {
		return runInit(args[1:], out)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Log lines would end up inside the file contents
	if args[0] == "cat" && cfg.Logging.ToStdout() {
		return errors.New("cat cannot be used with logging.output: stdout")
	}

	if err = config.Apply(cfg); err != nil {
		return err
	}
	opts, err := cfg.Files.OpenOptions()
	if err != nil {
		return err
	}

	jww.DEBUG.Printf("Running %q with %+v", args[0], opts)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "cat":
		return runCat(rest, opts, out)
	case "write":
		return runWrite(rest, opts, in)
	case "size":
		return runSize(rest, opts, out)
	case "truncate":
		return runTruncate(rest, opts)
	case "touch":
		return runTouch(rest, opts)
	case "lock":
		return runLock(rest, opts, out)
	case "stat":
		return runStat(rest, opts, out)
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}

// newFlagSet returns a flag set for a subcommand that reports errors instead
// of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// fileArg returns the n positional arguments left after parsing fs.
func fileArg(fs *flag.FlagSet, n int) ([]string, error) {
	if fs.NArg() != n {
		return nil, errors.Errorf("%s: expected %d argument(s), got %d",
			fs.Name(), n, fs.NArg())
	}
	return fs.Args(), nil
}

func runInit(args []string, out io.Writer) error {
	fs := newFlagSet("init")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}

	path := config.GetDefaultConfigPath()
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if err := config.InitConfigToPath(path, *force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Configuration written to %s\n", path)
	return errors.WithStack(err)
}

// openExisting opens path for reading with the configured share mode.
func openExisting(path string, access winfile.Access,
	opts config.OpenOptions) (*winfile.Handle, error) {
	return winfile.CreateFile(path, access, opts.Share, winfile.OpenExisting,
		winfile.FileAttributeNormal)
}

func runCat(args []string, opts config.OpenOptions, out io.Writer) error {
	fs := newFlagSet("cat")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 1)
	if err != nil {
		return err
	}

	h, err := openExisting(files[0], winfile.GenericRead, opts)
	if err != nil {
		return err
	}
	defer h.Close()

	size, err := h.GetFileSize()
	if err != nil {
		return err
	}

	buf := make([]byte, size)
	if _, err = h.ReadFile(buf, nil); err != nil {
		return err
	}
	_, err = out.Write(buf)
	return errors.WithStack(err)
}

func runWrite(args []string, opts config.OpenOptions, in io.Reader) error {
	fs := newFlagSet("write")
	disposition := fs.String("disposition", "",
		"Creation disposition overriding the configuration")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 1)
	if err != nil {
		return err
	}

	if *disposition != "" {
		if opts.Disposition, err = config.ParseDisposition(*disposition); err != nil {
			return err
		}
	}

	h, err := winfile.CreateFile(files[0], opts.Access|winfile.GenericWrite,
		opts.Share, opts.Disposition, winfile.FileAttributeNormal)
	if err != nil {
		return err
	}
	defer h.Close()

	if _, err = io.Copy(h, in); err != nil {
		return err
	}

	// Data from a previous, longer version of the file is dropped
	return h.SetEndOfFile()
}

func runSize(args []string, opts config.OpenOptions, out io.Writer) error {
	fs := newFlagSet("size")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 1)
	if err != nil {
		return err
	}

	h, err := openExisting(files[0], winfile.GenericRead, opts)
	if err != nil {
		return err
	}
	defer h.Close()

	size, err := h.GetFileSize()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, size)
	return errors.WithStack(err)
}

func runTruncate(args []string, opts config.OpenOptions) error {
	fs := newFlagSet("truncate")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 2)
	if err != nil {
		return err
	}

	size, err := strconv.ParseInt(files[1], 10, 64)
	if err != nil || size < 0 {
		return errors.Errorf("invalid size %q", files[1])
	}

	h, err := openExisting(files[0], winfile.GenericRead|winfile.GenericWrite,
		opts)
	if err != nil {
		return err
	}
	defer h.Close()

	if _, err = h.SetFilePointer(size, winfile.FileBegin); err != nil {
		return err
	}
	return h.SetEndOfFile()
}

func runTouch(args []string, opts config.OpenOptions) error {
	fs := newFlagSet("touch")
	at := fs.String("time", "", "RFC 3339 time to set instead of now")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 1)
	if err != nil {
		return err
	}

	t := time.Now()
	if *at != "" {
		if t, err = time.Parse(time.RFC3339Nano, *at); err != nil {
			return errors.Wrapf(err, "invalid time %q", *at)
		}
	}
	ft := winfile.FileTimeFromTime(t)

	h, err := winfile.CreateFile(files[0], winfile.GenericWrite, opts.Share,
		winfile.OpenAlways, winfile.FileAttributeNormal)
	if err != nil {
		return err
	}
	defer h.Close()

	return h.SetFileTime(nil, &ft, &ft)
}

func runLock(args []string, opts config.OpenOptions, out io.Writer) error {
	fs := newFlagSet("lock")
	shared := fs.Bool("shared", false, "Take a shared instead of an exclusive lock")
	wait := fs.Bool("wait", false, "Wait for a conflicting lock to be released")
	hold := fs.Duration("hold", 0, "How long to hold the lock")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 1)
	if err != nil {
		return err
	}

	// The lock is taken explicitly below
	opts.Share = winfile.FileShareNone
	h, err := openExisting(files[0], winfile.GenericRead, opts)
	if err != nil {
		return err
	}
	defer h.Close()

	if err = h.Lock(!*shared, !*wait); err != nil {
		return err
	}
	if _, err = fmt.Fprintf(out, "Locked %s\n", h.Name()); err != nil {
		return errors.WithStack(err)
	}

	time.Sleep(*hold)

	return h.UnlockFile()
}

func runStat(args []string, opts config.OpenOptions, out io.Writer) error {
	fs := newFlagSet("stat")
	if err := fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	files, err := fileArg(fs, 1)
	if err != nil {
		return err
	}

	h, err := openExisting(files[0], winfile.GenericRead, opts)
	if err != nil {
		return err
	}
	defer h.Close()

	size, err := h.GetFileSize()
	if err != nil {
		return err
	}
	fd, err := h.Fd()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out,
		"name: %s\nsize: %d\nfd: %d\naccess: %#x\nshare: %#x\n"+
			"disposition: %s\nlocked: %t\n",
		h.Name(), size, fd, uint32(h.Access()), uint32(h.ShareMode()),
		h.Disposition(), h.Locked())
	return errors.WithStack(err)
}
