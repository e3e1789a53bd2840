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
	"os"
	"path/filepath"

	"github.com/hooya-network/hooya/pkg/hooyapb"
)

func init() {
	RegisterCommand("add-dir", func(flags *flag.FlagSet) CommandRunner {
		cmd := new(addDirCmd)
		flags.BoolVar(&cmd.unlink, "unlink", false, "remove each file after a successful upload")
		flags.Var(&cmd.initTags, "init-tag", "namespace:descriptor tag to apply to each uploaded file, repeatable")
		return cmd
	})
}

type addDirCmd struct {
	unlink   bool
	initTags tagList
}

func (c *addDirCmd) Usage() {
	fmt.Fprintln(os.Stderr, "usage: hooya add-dir [--unlink] [--init-tag N:D]... <dir>...")
}

func (c *addDirCmd) RunCommand(ctx *Context, args []string) error {
	if len(args) == 0 {
		c.Usage()
		return fmt.Errorf("no directories given")
	}
	tags, err := c.initTags.parse()
	if err != nil {
		return err
	}

	var files []string
	for _, dir := range args {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}

	for _, path := range files {
		cidText, err := addOne(ctx, path, false)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println(cidText)
		if len(tags) > 0 {
			if _, err := ctx.Client.TagCid(backgroundContext(), &hooyapb.TagCidRequest{Cid: cidText, Tags: tags}); err != nil {
				return fmt.Errorf("%s: tagging: %w", path, err)
			}
		}
		if c.unlink {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("%s: unlink: %w", path, err)
			}
		}
	}
	return nil
}
