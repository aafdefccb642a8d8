package goresto

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const recentLimit = 10

func HomeHandler(svc Service, sessions *Sessions, views *Views) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := svc.RecentRestaurants(recentLimit)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		user, _ := sessions.CurrentUser(r)
		views.render(w, "home.html", viewData{User: user, Flash: popFlash(w, r), Restaurants: restaurants})
	})
}

func RegisterHandler(svc Service, sessions *Sessions, views *Views) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			views.render(w, "register.html", viewData{Flash: popFlash(w, r)})
			return
		}

		req := registerUserRequest{Username: r.FormValue("username"), Password: r.FormValue("password")}
		user, err := svc.RegisterNewUser(req)
		if err != nil {
			switch err {
			case ErrEmptyUsername, ErrEmptyPassword, ErrExistingUsername:
				views.render(w, "register.html", viewData{Error: err.Error()})
			default:
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			return
		}

		if err := sessions.Start(w, user); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		setFlash(w, "Registered and logged in.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func LoginHandler(svc Service, sessions *Sessions, views *Views) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			views.render(w, "login.html", viewData{Flash: popFlash(w, r)})
			return
		}

		req := loginRequest{Username: r.FormValue("username"), Password: r.FormValue("password")}
		user, err := svc.ValidateCredentials(req)
		if err != nil {
			// Same message for unknown usernames and wrong passwords.
			views.render(w, "login.html", viewData{Error: ErrInvalidCredentials.Error()})
			return
		}

		if err := sessions.Start(w, user); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		setFlash(w, "Welcome back!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func LogoutHandler(sessions *Sessions) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions.End(w)
		setFlash(w, "Logged out.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func ProfileHandler(svc Service, views *Views) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		if r.Method == http.MethodPost {
			req := editProfileRequest{
				DisplayName: r.FormValue("display_name"),
				NewPassword: r.FormValue("new_password"),
			}
			if err := svc.EditProfile(user.ID, req); err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			setFlash(w, "Profile updated.")
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}

		profile, err := svc.GetProfile(user.ID)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		views.render(w, "profile.html", viewData{User: profile, Flash: popFlash(w, r)})
	})
}

func RestaurantsHandler(svc Service, views *Views) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		if r.Method == http.MethodPost {
			req := addRestaurantRequest{Name: r.FormValue("name"), Cuisine: r.FormValue("cuisine")}
			if _, err := svc.AddRestaurant(req, user.ID); err != nil {
				if err == ErrEmptyName {
					// Redisplay the form instead of redirecting so the
					// error survives without a flash round-trip.
					restaurants, _ := svc.SearchRestaurants("")
					views.render(w, "restaurants.html", viewData{User: user, Error: err.Error(), Restaurants: restaurants})
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			setFlash(w, "Restaurant added.")
			http.Redirect(w, r, "/restaurants", http.StatusSeeOther)
			return
		}

		query := r.URL.Query().Get("q")
		restaurants, err := svc.SearchRestaurants(query)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		views.render(w, "restaurants.html", viewData{User: user, Flash: popFlash(w, r), Restaurants: restaurants, Query: query})
	})
}

func DeleteRestaurantHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := svc.RemoveRestaurant(id, user.ID); err != nil {
			encodeError(err, w)
			return
		}
		setFlash(w, "Deleted.")
		http.Redirect(w, r, "/restaurants", http.StatusSeeOther)
	})
}

func encodeError(err error, w http.ResponseWriter) {
	switch err {
	case ErrInvalidID:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrRestaurantNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case ErrNotOwner:
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
