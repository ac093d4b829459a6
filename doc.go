/*
Package memstore provides a typed, observable, in-memory entity store.

A Store keeps entities of one type keyed by a string identifier, answers
queries over them by linear scan, and notifies subscribers synchronously of
every add, update and remove.

Key Features:
  - Type-safe stores using Go generics
  - Pluggable identifier selector and validation hook
  - Synchronous change notification with isolated, logged handler failures
  - Extension methods built once on top of the live state
  - A Registry for keeping many named stores
  - Warm-up from external sources (see package datasource)

Basic Usage:

	type User struct {
	    ID   string
	    Name string
	}

	users, err := memstore.New(memstore.Config[User, memstore.NoMethods]{
	    Name:  "users",
	    IDKey: memstore.FieldID[User](memstore.DefaultIDField),
	})
	if err != nil {
	    return err
	}

	unsubscribe := users.Subscribe(func(ev memstore.EventType, u User) error {
	    log.Printf("%s %s", ev, u.ID)
	    return nil
	})
	defer unsubscribe()

	users.Set(User{ID: "1", Name: "A"}, User{ID: "2", Name: "B"})
	u, ok := users.FindByID("2")

Extension Methods:

	type userMethods struct {
	    FindByName func(name string) (User, bool)
	}

	users, _ := memstore.New(memstore.Config[User, userMethods]{
	    Name:  "users",
	    IDKey: memstore.FieldID[User]("ID"),
	    Methods: func(ctx memstore.MethodsContext[User, userMethods]) (userMethods, error) {
	        return userMethods{FindByName: func(name string) (User, bool) {
	            return ctx.Self.FindOne(func(u User) bool { return u.Name == name })
	        }}, nil
	    },
	})
	u, ok := users.Methods().FindByName("A")

A Store does no locking: confine it to one goroutine or guard it externally.
Clear drops all entities without firing remove events.
*/
package memstore
