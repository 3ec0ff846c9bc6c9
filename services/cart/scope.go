package cart

import (
	"context"
	"net/http"

	"github.com/MarcGrol/partnerstorefront/lib/myhttp"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
	"github.com/MarcGrol/partnerstorefront/lib/mynotifier"
	"github.com/MarcGrol/partnerstorefront/lib/mystorage"
	"github.com/MarcGrol/partnerstorefront/lib/mystore"
	"github.com/MarcGrol/partnerstorefront/lib/myuuid"
)

// Scope is one page load of one browser: a store over that browser's durable storage and a
// notifier that lives as long as the request.
type Scope struct {
	BrowserUID string
	Store      *Store
}

func NewScope(browserUID string, storage mystorage.Storage, storageKey string, linker CheckoutLinker, logger mylog.Logger) Scope {
	store := NewStore(storage, storageKey, mynotifier.New[Cart](), linker, logger).WithTraceLabel(browserUID)
	return Scope{
		BrowserUID: browserUID,
		Store:      store,
	}
}

// Mount creates a fresh provider for one ui island and hydrates it.
func (s Scope) Mount(c context.Context) (*Provider, error) {
	provider, err := NewProvider(s.Store)
	if err != nil {
		return nil, err
	}
	provider.Mount(c)
	return provider, nil
}

// ScopeResolver turns an incoming request into the Scope of the browser that sent it.
type ScopeResolver struct {
	storage    mystore.Store[mystorage.Item]
	storageKey string
	linker     CheckoutLinker
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

func NewScopeResolver(storage mystore.Store[mystorage.Item], storageKey string, linker CheckoutLinker, uuider myuuid.UUIDer, logger mylog.Logger) *ScopeResolver {
	return &ScopeResolver{
		storage:    storage,
		storageKey: storageKey,
		linker:     linker,
		uuider:     uuider,
		logger:     logger,
	}
}

// Resolve identifies the browser, issuing the browser cookie on w when it is missing.
func (r *ScopeResolver) Resolve(w http.ResponseWriter, req *http.Request) Scope {
	browserUID := myhttp.BrowserUID(w, req, r.uuider)
	return NewScope(browserUID, mystorage.NewScoped(r.storage, browserUID), r.storageKey, r.linker, r.logger)
}

func (r *ScopeResolver) Linker() CheckoutLinker {
	return r.linker
}
