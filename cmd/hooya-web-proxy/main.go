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

// Command hooya-web-proxy serves the read-only HTTP façade over hooyad's
// Control gRPC service, for browser consumption: spec.md §4.8.
package main

import (
	"flag"
	"log"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hooya-network/hooya/pkg/config"
	"github.com/hooya-network/hooya/pkg/rpc"
	"github.com/hooya-network/hooya/pkg/webproxy"
)

var (
	flagListen   = flag.String("listen", "", "HTTP listen address (default: $HOOYA_WEB_PROXY_ENDPOINT or 127.0.0.1:7891)")
	flagEndpoint = flag.String("endpoint", "", "hooyad gRPC endpoint to proxy (default: $HOOYAD_ENDPOINT or 127.0.0.1:7890)")
)

func main() {
	flag.Parse()

	endpoint := *flagEndpoint
	if endpoint == "" {
		endpoint = config.Endpoint()
	}
	cc, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("hooya-web-proxy: dialing %s: %v", endpoint, err)
	}
	defer cc.Close()

	h := webproxy.NewHandler(rpc.NewClient(cc))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	listen := *flagListen
	if listen == "" {
		listen = config.WebProxyEndpoint()
	}
	log.Printf("hooya-web-proxy: proxying %s, listening on %s", endpoint, listen)
	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Fatalf("hooya-web-proxy: serve: %v", err)
	}
}
