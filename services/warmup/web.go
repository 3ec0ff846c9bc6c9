package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/partnerstorefront/lib/mycontext"
	"github.com/MarcGrol/partnerstorefront/lib/myhttp"
	"github.com/MarcGrol/partnerstorefront/lib/mylog"
)

type catalogRefresher interface {
	Refresh(c context.Context) (int, error)
}

type webService struct {
	logger  mylog.Logger
	catalog catalogRefresher
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(catalog catalogRefresher) *webService {
	return &webService{
		logger:  mylog.New("warmup"),
		catalog: catalog,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage fills the catalog mirror before the instance receives traffic.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		count, err := s.catalog.Refresh(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully processed warmup request: %d products cached", count),
		})
	}
}
