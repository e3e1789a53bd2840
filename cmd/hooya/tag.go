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
	"strings"

	"github.com/hooya-network/hooya/pkg/hooyapb"
)

func init() {
	RegisterCommand("tag", func(flags *flag.FlagSet) CommandRunner {
		return new(tagCmd)
	})
}

// tagList collects repeated -init-tag flag values, implementing
// flag.Value.
type tagList []string

func (t *tagList) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(*t, ",")
}

func (t *tagList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func (t tagList) parse() ([]hooyapb.TagDescriptor, error) {
	out := make([]hooyapb.TagDescriptor, 0, len(t))
	for _, s := range t {
		td, err := ParseTag(s)
		if err != nil {
			return nil, err
		}
		out = append(out, td)
	}
	return out, nil
}

type tagCmd struct{}

func (c *tagCmd) Usage() {
	fmt.Fprintln(os.Stderr, "usage: hooya tag <cid> <namespace:descriptor>...")
}

func (c *tagCmd) RunCommand(ctx *Context, args []string) error {
	if len(args) < 2 {
		c.Usage()
		return fmt.Errorf("need a CID and at least one tag")
	}
	cidText := args[0]
	tags := make([]hooyapb.TagDescriptor, 0, len(args)-1)
	for _, s := range args[1:] {
		td, err := ParseTag(s)
		if err != nil {
			return err
		}
		tags = append(tags, td)
	}
	_, err := ctx.Client.TagCid(backgroundContext(), &hooyapb.TagCidRequest{Cid: cidText, Tags: tags})
	return err
}
