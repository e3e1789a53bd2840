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

	"github.com/hooya-network/hooya/pkg/chunked"
	"github.com/hooya-network/hooya/pkg/cidutil"
	"github.com/hooya-network/hooya/pkg/hooyapb"
)

func init() {
	RegisterCommand("add", func(flags *flag.FlagSet) CommandRunner {
		cmd := new(addCmd)
		flags.BoolVar(&cmd.justHash, "just-hash", false, "print the CID without uploading")
		flags.BoolVar(&cmd.unlink, "unlink", false, "remove each file after a successful upload")
		flags.Var(&cmd.initTags, "init-tag", "namespace:descriptor tag to apply to each uploaded file, repeatable")
		return cmd
	})
}

type addCmd struct {
	justHash bool
	unlink   bool
	initTags tagList
}

func (c *addCmd) Usage() {
	fmt.Fprintln(os.Stderr, "usage: hooya add [--just-hash] [--unlink] [--init-tag N:D]... <file>...")
}

func (c *addCmd) RunCommand(ctx *Context, args []string) error {
	if len(args) == 0 {
		c.Usage()
		return fmt.Errorf("no files given")
	}
	tags, err := c.initTags.parse()
	if err != nil {
		return err
	}
	for _, path := range args {
		cidText, err := addOne(ctx, path, c.justHash)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println(cidText)
		if len(tags) > 0 && !c.justHash {
			if _, err := ctx.Client.TagCid(backgroundContext(), &hooyapb.TagCidRequest{Cid: cidText, Tags: tags}); err != nil {
				return fmt.Errorf("%s: tagging: %w", path, err)
			}
		}
		if c.unlink && !c.justHash {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("%s: unlink: %w", path, err)
			}
		}
	}
	return nil
}

// addOne streams path to the daemon, or just computes its CID locally
// when justHash is set.
func addOne(ctx *Context, path string, justHash bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if justHash {
		digest := cidutil.NewDigest()
		if err := chunked.Each(f, func(b []byte) bool {
			digest.Write(b)
			return true
		}); err != nil {
			return "", err
		}
		cidBytes, err := cidutil.Wrap(digest.Sum(nil))
		if err != nil {
			return "", err
		}
		return cidutil.Encode(cidBytes)
	}

	stream, err := ctx.Client.StreamToFilestore(backgroundContext())
	if err != nil {
		return "", err
	}
	cr := chunked.New(f)
	for {
		b, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if err := stream.Send(&hooyapb.FileChunk{Data: append([]byte(nil), b...)}); err != nil {
			return "", err
		}
	}
	reply, err := stream.CloseAndRecv()
	if err != nil {
		return "", err
	}
	return cidutil.Encode(reply.Cid)
}
