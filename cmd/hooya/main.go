/*
Copyright 2024 The Hooya Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command hooya is the control-tool CLI: it issues the same RPCs the
// desktop viewer does, for scripting and one-off ingestion.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hooya-network/hooya/pkg/config"
	"github.com/hooya-network/hooya/pkg/hooyapb"
	"github.com/hooya-network/hooya/pkg/rpc"
)

// CommandRunner is one hooya subcommand.
type CommandRunner interface {
	Usage()
	RunCommand(ctx *Context, args []string) error
}

var modeCommand = make(map[string]CommandRunner)
var modeFlags = make(map[string]*flag.FlagSet)

// RegisterCommand registers a subcommand under mode, the pattern shared
// by every hooya subcommand file in this package.
func RegisterCommand(mode string, makeCmd func(Flags *flag.FlagSet) CommandRunner) {
	if _, dup := modeCommand[mode]; dup {
		log.Fatalf("hooya: duplicate command %q registered", mode)
	}
	flags := flag.NewFlagSet(mode+" options", flag.ExitOnError)
	modeFlags[mode] = flags
	modeCommand[mode] = makeCmd(flags)
}

// Context carries the shared state every subcommand needs: a dialed RPC
// client.
type Context struct {
	Client rpc.ControlClient
}

// ParseTag parses a "namespace:descriptor" or bare "descriptor" string into a
// TagDescriptor, defaulting namespace to "general" per spec.md §6.
func ParseTag(s string) (hooyapb.TagDescriptor, error) {
	if s == "" {
		return hooyapb.TagDescriptor{}, fmt.Errorf("empty tag")
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return hooyapb.TagDescriptor{Namespace: s[:i], Descriptor: s[i+1:]}, nil
	}
	return hooyapb.TagDescriptor{Namespace: "general", Descriptor: s}, nil
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	mode := os.Args[1]
	cmd, ok := modeCommand[mode]
	if !ok {
		usage()
	}
	flags := modeFlags[mode]
	flags.Usage = cmd.Usage
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	endpoint := config.Endpoint()
	cc, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("hooya: dialing %s: %v", endpoint, err)
	}
	defer cc.Close()

	client := rpc.NewClient(cc)
	v, err := client.Version(backgroundContext(), &hooyapb.VersionRequest{})
	if err != nil {
		log.Fatalf("hooya: connecting to %s: %v", endpoint, err)
	}
	pre := ""
	if v.Pre != "" {
		pre = "-" + v.Pre
	}
	fmt.Fprintf(os.Stderr, "hooyad %d.%d.%d%s at %s\n", v.Major, v.Minor, v.Patch, pre, endpoint)

	ctx := &Context{Client: client}
	if err := cmd.RunCommand(ctx, flags.Args()); err != nil {
		log.Fatalf("hooya %s: %v", mode, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hooya <add|add-dir|tag|dl> [flags] [args]")
	os.Exit(1)
}

// backgroundContext is the default context for CLI RPCs: the process
// lifetime is the timeout.
func backgroundContext() context.Context { return context.Background() }
