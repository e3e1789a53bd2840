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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hooya-network/hooya/pkg/hooyapb"
)

func init() {
	RegisterCommand("dl", func(flags *flag.FlagSet) CommandRunner {
		cmd := new(dlCmd)
		flags.StringVar(&cmd.out, "o", "", "output path (default: the CID's text form, in the current directory)")
		return cmd
	})
}

type dlCmd struct {
	out string
}

func (c *dlCmd) Usage() {
	fmt.Fprintln(os.Stderr, "usage: hooya dl [-o path] <cid>")
}

func (c *dlCmd) RunCommand(ctx *Context, args []string) error {
	if len(args) != 1 {
		c.Usage()
		return fmt.Errorf("need exactly one CID")
	}
	cidText := args[0]

	stream, err := ctx.Client.ContentAtCid(backgroundContext(), &hooyapb.CidRequest{Cid: cidText})
	if err != nil {
		return err
	}

	outPath := c.out
	if outPath == "" {
		outPath = cidText
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			os.Remove(outPath)
			return err
		}
		if _, err := f.Write(chunk.Data); err != nil {
			return err
		}
	}
	return nil
}
