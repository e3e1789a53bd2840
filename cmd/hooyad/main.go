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

// Command hooyad is the vault daemon: it owns the filestore and index and
// exposes the Control gRPC service.
package main

import (
	"flag"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/hooya-network/hooya/pkg/config"
	"github.com/hooya-network/hooya/pkg/filestore"
	"github.com/hooya-network/hooya/pkg/index"
	"github.com/hooya-network/hooya/pkg/rpc"
	"github.com/hooya-network/hooya/pkg/runtime"
)

var (
	flagEndpoint  = flag.String("endpoint", "", "listen address (default: $HOOYAD_ENDPOINT or 127.0.0.1:7890)")
	flagFilestore = flag.String("filestore", "", "filestore root directory (default: $HOOYAD_FILESTORE)")
	flagDBURI     = flag.String("db", "", "index connection URI (default: $HOOYAD_DB_URI or <filestore>/hooya.sqlite)")
)

func main() {
	flag.Parse()

	filestoreRoot := *flagFilestore
	if filestoreRoot == "" {
		var ok bool
		filestoreRoot, ok = config.FilestorePath()
		if !ok {
			log.Fatal("hooyad: filestore root not set; pass -filestore or set HOOYAD_FILESTORE")
		}
	}
	if err := os.MkdirAll(filestoreRoot, 0o700); err != nil {
		log.Fatalf("hooyad: creating filestore root: %v", err)
	}

	store, err := filestore.Open(filestoreRoot)
	if err != nil {
		log.Fatalf("hooyad: opening filestore: %v", err)
	}

	dbURI := *flagDBURI
	if dbURI == "" {
		dbURI = config.DBURI(filestoreRoot)
	}
	idx, err := index.Open(dbURI)
	if err != nil {
		log.Fatalf("hooyad: opening index: %v", err)
	}
	defer idx.Close()

	rt := runtime.New(store, idx)

	endpoint := *flagEndpoint
	if endpoint == "" {
		endpoint = config.Endpoint()
	}
	lis, err := net.Listen("tcp", endpoint)
	if err != nil {
		log.Fatalf("hooyad: listening on %s: %v", endpoint, err)
	}

	srv := grpc.NewServer()
	rpc.RegisterControlServer(srv, rpc.NewServer(rt))

	log.Printf("hooyad: filestore=%s db=%s listening on %s", filestoreRoot, dbURI, endpoint)
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("hooyad: serve: %v", err)
	}
}
