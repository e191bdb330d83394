// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program dis86 disassembles 8086 machine code.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/tsavola/dec86"
	"github.com/tsavola/dec86/disasm"
	"github.com/tsavola/dec86/internal/table"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func mapFile(f *os.File) (data []byte, err error) {
	info, err := f.Stat()
	if err != nil {
		return
	}

	if size := info.Size(); size > 0 {
		data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	}
	return
}

func openTable(filename string) (io.ReadCloser, error) {
	if filename == "" {
		return ioutil.NopCloser(strings.NewReader(dec86.DefaultTable())), nil
	}
	return os.Open(filename)
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] binaryfile\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	var (
		verbose   = false
		tableFile = ""
		showBytes = term.IsTerminal(int(os.Stdout.Fd()))
		dumpTable = false
	)

	flag.BoolVar(&verbose, "v", verbose, "verbose logging")
	flag.StringVar(&tableFile, "table", tableFile, "instruction table file (default is built in)")
	flag.BoolVar(&showBytes, "bytes", showBytes, "show addresses and instruction bytes")
	flag.BoolVar(&dumpTable, "dumptable", dumpTable, "dump the compiled instruction table and exit")
	flag.Parse()

	if !dumpTable && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	config := &dec86.Config{
		Logger: logger,
	}

	if dumpTable {
		f, err := openTable(tableFile)
		if err != nil {
			log.Fatal(err)
		}

		t, err := table.Compile(f, config.Logger)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}

		spew.Fdump(os.Stdout, t)
		logger.WithField("entries", t.Entries()).Info("instruction table")
		return
	}

	var (
		d   *dec86.Decoder
		err error
	)

	if tableFile == "" && !verbose {
		d, err = dec86.Default()
	} else {
		var f io.ReadCloser
		if f, err = openTable(tableFile); err == nil {
			d, err = dec86.Compile(config, f)
			f.Close()
		}
	}
	if err != nil {
		log.Fatal(err)
	}

	filename := flag.Arg(0)

	f, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}

	code, err := mapFile(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}
	if code != nil {
		defer unix.Munmap(code)
	}

	w := bufio.NewWriter(os.Stdout)
	err = disasm.Fprint(w, d, code, showBytes)
	if e := w.Flush(); err == nil {
		err = e
	}
	if err != nil {
		logger.WithField("file", filename).Error(err)
		os.Exit(1)
	}
}
