package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/partnerstorefront/lib/myconfig"
	"github.com/MarcGrol/partnerstorefront/lib/myhttpclient"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/mypublisher"
	"github.com/MarcGrol/partnerstorefront/lib/mypubsub"
	"github.com/MarcGrol/partnerstorefront/lib/myqueue"
	"github.com/MarcGrol/partnerstorefront/lib/mystorage"
	"github.com/MarcGrol/partnerstorefront/lib/mystore"
	"github.com/MarcGrol/partnerstorefront/lib/mytime"
	"github.com/MarcGrol/partnerstorefront/lib/myuuid"
	"github.com/MarcGrol/partnerstorefront/services/cart"
	"github.com/MarcGrol/partnerstorefront/services/catalog"
	"github.com/MarcGrol/partnerstorefront/services/warmup"
)

func main() {
	c := context.Background()

	cfg, err := myconfig.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	router := mux.NewRouter()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{})
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	cartStorage, cartStorageCleanup, err := mystore.New[mystorage.Item](c)
	if err != nil {
		log.Fatalf("Error creating cart storage: %s", err)
	}
	defer cartStorageCleanup()

	productStore, productStoreCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	loader := catalog.NewLoader(myhttpclient.New(), cfg.CommerceDomain, cfg.CatalogPath)
	productCatalog := catalog.NewCatalog(productStore, loader, mylog.New("catalog"))

	linker := cart.NewCheckoutLinker(cfg, mytime.RealNower{})
	resolver := cart.NewScopeResolver(cartStorage, cfg.CartStorageKey, linker, myuuid.RealUUIDer{}, mylog.New("cart"))
	cartService := cart.NewService(resolver, productCatalog, publisher, pubsub, cfg.BaseURL())
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cart endpoints: %s", err)
	}

	catalog.NewService(productCatalog, resolver).RegisterEndpoints(c, router)

	warmup.NewService(productCatalog).RegisterEndpoints(c, router)

	// The mirror is filled again by the warmup request; an unreachable partner should not block startup.
	go func() {
		count, err := productCatalog.Refresh(c)
		if err != nil {
			log.Printf("Error filling catalog at startup: %s", err)
			return
		}
		log.Printf("Catalog filled with %d products", count)
	}()

	startWebServerBlocking(cfg.Port, router)
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
