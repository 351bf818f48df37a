// Package remote exposes the render state over GraphQL so the visualizer can
// be driven from another machine. Remote key presses go through the same path
// as the keyboard: they are queued for the render loop, never applied here.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/graphql-go/graphql"

	"github.com/peragwin/linevis/visual"
)

// ErrQueueFull is returned by a press mutation when the render loop has not
// caught up with earlier presses.
var ErrQueueFull = errors.New("key queue is full")

// Controller serves the GraphQL schema.
type Controller struct {
	keys chan<- visual.Key

	mu    sync.RWMutex
	state visual.State

	schema graphql.Schema
}

// NewController creates a Controller that forwards key presses to keys.
// initial is reported until the first call to Publish.
func NewController(keys chan<- visual.Key, initial visual.State) (*Controller, error) {
	c := &Controller{keys: keys, state: initial}
	if err := c.initGraphql(); err != nil {
		return nil, err
	}
	return c, nil
}

// Publish records the latest state. It is meant to be used as Pipeline.OnState.
func (c *Controller) Publish(s visual.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// State returns the last published state.
func (c *Controller) State() visual.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) press(k visual.Key) error {
	select {
	case c.keys <- k:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Controller) initGraphql() error {
	stateType := newObjectType("StateType", visual.State{})
	stateType.AddFieldConfig("color", &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			s, ok := p.Source.(visual.State)
			if !ok {
				return nil, fmt.Errorf("unexpected source: %#v", p.Source)
			}
			if s.Brush >= len(s.Palette) {
				return nil, nil
			}
			return s.Palette[s.Brush].Hex(), nil
		},
	})

	rootQuery := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootQuery",
			Fields: graphql.Fields{
				"state": &graphql.Field{
					Type: stateType,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return c.State(), nil
					},
				},
			},
		},
	)
	rootMut := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootMut",
			Fields: graphql.Fields{
				"press": &graphql.Field{
					Type: graphql.String,
					Args: graphql.FieldConfigArgument{
						"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						name, _ := p.Args["key"].(string)
						k, err := visual.ParseKey(name)
						if err != nil {
							return nil, err
						}
						if err := c.press(k); err != nil {
							return nil, err
						}
						return k.String(), nil
					},
				},
			},
		},
	)
	schema, err := graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    rootQuery,
			Mutation: rootMut,
		},
	)
	if err != nil {
		return err
	}
	c.schema = schema
	return nil
}

// Query runs a GraphQL request against the schema.
func (c *Controller) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}

// Handler returns the HTTP API: /api/v1/graphql takes the query as a URL
// parameter and /api/v2/graphql takes an apollo style JSON body.
func (c *Controller) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		glog.V(1).Infoln("graphql:", query)
		c.respond(w, c.Query(query, nil))
	})

	mux.HandleFunc("/api/v2/graphql", func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var apolloQuery struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.Unmarshal(body, &apolloQuery); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		glog.V(1).Infoln("graphql:", apolloQuery.Query)
		c.respond(w, c.Query(apolloQuery.Query, apolloQuery.Variables))
	})

	return mux
}

func (c *Controller) respond(w http.ResponseWriter, res *graphql.Result) {
	for _, err := range res.Errors {
		glog.Warningf("graphql: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		glog.Warningf("error writing response: %v", err)
	}
}

// newObjectType builds a read only object type from the json tagged fields of
// val's struct type. Resolvers read the matching field of the source value.
func newObjectType(name string, val interface{}) *graphql.Object {
	ref := reflect.TypeOf(val)
	fields := graphql.Fields{}

	for i := 0; i < ref.NumField(); i++ {
		f := ref.Field(i)
		tag := jsonTag(&f)
		if tag == "" || tag == "-" {
			continue
		}
		var typ graphql.Output
		switch f.Type.Kind() {
		case reflect.Bool:
			typ = graphql.Boolean
		case reflect.Float32, reflect.Float64:
			typ = graphql.Float
		case reflect.String:
			typ = graphql.String
		case reflect.Int, reflect.Int8, reflect.Int32, reflect.Int64:
			typ = graphql.Int
		default:
			panic(fmt.Sprint("unsupported type ", f.Type))
		}
		field := i
		fields[tag] = &graphql.Field{
			Type: typ,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				src := reflect.ValueOf(p.Source)
				if !src.IsValid() || src.Type() != ref {
					return nil, fmt.Errorf("unexpected source: %#v", p.Source)
				}
				return src.Field(field).Interface(), nil
			},
		}
	}

	return graphql.NewObject(
		graphql.ObjectConfig{
			Name:   name,
			Fields: fields,
		})
}

func jsonTag(f *reflect.StructField) string {
	t := f.Tag.Get("json")
	return strings.Split(t, ",")[0]
}
