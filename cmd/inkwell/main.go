package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkwell-editor/inkwell/config"
	"github.com/inkwell-editor/inkwell/workspace"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]
	var root string
	var file string

	for _, arg := range args {
		switch arg {
		case "--version", "-v":
			fmt.Printf("inkwell %s\n", version)
			os.Exit(0)
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		default:
			if isFlag(arg) {
				continue
			}
			if root == "" {
				root = arg
			} else if file == "" {
				file = arg
			}
		}
	}

	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
			os.Exit(1)
		}
		root = cwd
	}

	configPath := filepath.Join(root, ".inkwell.toml")
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inkwell: config: %v\n", err)
		os.Exit(1)
	}

	ws, err := workspace.New(root, &settings, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
		os.Exit(1)
	}

	if file != "" {
		if _, err := ws.OpenBuffer(file); err != nil {
			fmt.Fprintf(os.Stderr, "inkwell: opening %s: %v\n", file, err)
			os.Exit(1)
		}
		printBuffer(ws)
		return
	}

	for _, p := range ws.BufferPaths() {
		fmt.Println(p.Path)
	}
}

func printBuffer(ws *workspace.Workspace) {
	path, _ := ws.CurrentBufferPath()
	current, ok := ws.CurrentBuffer()
	if !ok {
		return
	}
	fmt.Printf("%s (%d lines)\n", path, current.LineCount())

	stream, err := ws.CurrentBufferTokens()
	if err != nil {
		return
	}
	for _, tok := range stream.Tokens() {
		fmt.Printf("  %v %v\n", tok.Position, tok.ScopeStack)
	}
}

func isFlag(s string) bool {
	return len(s) > 0 && s[0] == '-'
}

func printHelp() {
	fmt.Println("inkwell - a gap-buffer text editing toolkit")
	fmt.Println()
	fmt.Println("Usage: inkwell [options] [root] [file]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("With no file, lists the paths of buffers already open in root.")
	fmt.Println("With a file, opens it and prints a syntax-token dump.")
}
