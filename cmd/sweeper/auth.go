package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type PlayerClaims struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func signPlayerJwt(claims PlayerClaims) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(
		time.Now().Add(cfg.Jwt.TokenLifetime.Duration),
	)
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(jwtPrivateKey)
}

func parsePlayerJwt(tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString, &PlayerClaims{},
		func(t *jwt.Token) (any, error) { return jwtPublicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

/*
The signed token is split across two cookies: the header and payload go in
a JS-readable cookie, the signature in an HttpOnly one. The pair is
rejoined when parsing.
*/
func setPlayerCookies(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return errors.New("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	expires := time.Now().Add(cfg.Jwt.TokenLifetime.Duration)
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   cfg.Cookies.Domain,
		Secure:   cfg.Cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   cfg.Cookies.Domain,
		Secure:   cfg.Cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func clearPlayerCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		Domain:   cfg.Cookies.Domain,
		Secure:   cfg.Cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   cfg.Cookies.Domain,
		Secure:   cfg.Cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func refreshPlayerCookies(w http.ResponseWriter, claims PlayerClaims) {
	token, err := signPlayerJwt(claims)
	if err != nil {
		log.Error("unable to sign refreshed claims: ", err)
		return
	}
	if err := setPlayerCookies(w, token); err != nil {
		log.Error(err)
	}
}

func parsePlayerCookies(r *http.Request) (*PlayerClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	return parsePlayerJwt(authCookie.Value + "." + signCookie.Value)
}

func credentialsFromForm(
	w http.ResponseWriter, r *http.Request,
) (username string, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return "", "", false
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		sendJSON(w, map[string]string{
			"error": "request body must contain url-encoded username and password",
		})
		return "", "", false
	}
	if len([]byte(password)) > 72 { // bcrypt input limit
		w.WriteHeader(http.StatusBadRequest)
		sendJSON(w, map[string]string{"error": "password too long"})
		return "", "", false
	}
	return username, password, true
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentialsFromForm(w, r)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to hash password: ", err)
		return
	}

	player, err := pg.CreatePlayer(r.Context(), username, hash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		sendJSON(w, map[string]string{"error": "username taken"})
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}

	claims := PlayerClaims{PlayerId: player.PlayerId, Username: player.Username}
	token, err := signPlayerJwt(claims)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to sign claims: ", err)
		return
	}
	if err := setPlayerCookies(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
	}
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentialsFromForm(w, r)
	if !ok {
		return
	}

	player, err := pg.GetPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}

	if bcrypt.CompareHashAndPassword(
		player.PasswordHash, []byte(password),
	) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	claims := PlayerClaims{PlayerId: player.PlayerId, Username: player.Username}
	token, err := signPlayerJwt(claims)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to sign claims: ", err)
		return
	}
	if err := setPlayerCookies(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
	}
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	clearPlayerCookies(w)
}

type Status struct {
	LoggedIn bool    `json:"logged_in"`
	Username *string `json:"username,omitempty"`
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	status := Status{}
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		status.LoggedIn = true
		status.Username = &claims.Username
		refreshPlayerCookies(w, *claims)
	} else {
		clearPlayerCookies(w)
	}
	if _, err := sendJSON(w, status); err != nil {
		log.Error(err)
	}
}
