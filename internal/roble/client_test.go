package roble

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNormalizaObjetoYArreglo(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/read", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "persona", r.URL.Query().Get("tableName"))

		switch r.URL.Query().Get("nro_doc") {
		case "123":
			json.NewEncoder(w).Encode(map[string]any{"nro_doc": "123"})
		case "456":
			json.NewEncoder(w).Encode([]map[string]any{{"nro_doc": "456"}, {"nro_doc": "457"}})
		default:
			json.NewEncoder(w).Encode([]any{})
		}
	}))
	defer servidor.Close()

	c := NewClient(servidor.URL, time.Second)

	filas, err := c.Read(context.Background(), "token-1", "persona", map[string]string{"nro_doc": "123"})
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "123", filas[0]["nro_doc"])

	filas, err = c.Read(context.Background(), "token-1", "persona", map[string]string{"nro_doc": "456"})
	require.NoError(t, err)
	assert.Len(t, filas, 2)
}

func TestReadSinCoincidenciasNoEsError(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}))
	defer servidor.Close()

	c := NewClient(servidor.URL, time.Second)

	filas, err := c.Read(context.Background(), "token", "persona", map[string]string{"nro_doc": "999"})

	require.NoError(t, err)
	assert.Empty(t, filas)
}

func TestInsertEnviaTablaYRegistros(t *testing.T) {
	var recibido map[string]any
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/insert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"inserted": []any{map[string]any{"_id": "abc", "nro_doc": "123"}}})
	}))
	defer servidor.Close()

	c := NewClient(servidor.URL, time.Second)

	respuesta, err := c.Insert(context.Background(), "token", "persona", []map[string]any{{"nro_doc": "123"}})

	require.NoError(t, err)
	assert.Equal(t, "persona", recibido["tableName"])
	registros, ok := recibido["records"].([]any)
	require.True(t, ok)
	assert.Len(t, registros, 1)
	assert.Contains(t, respuesta, "inserted")
}

func TestUpdateEnviaColumnaYValor(t *testing.T) {
	var recibido map[string]any
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/update", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		json.NewEncoder(w).Encode(map[string]any{"nro_doc": "123", "celular": "3109998877"})
	}))
	defer servidor.Close()

	c := NewClient(servidor.URL, time.Second)

	filas, err := c.Update(context.Background(), "token", "persona", "nro_doc", "123", map[string]any{"celular": "3109998877"})

	require.NoError(t, err)
	assert.Equal(t, "nro_doc", recibido["idColumn"])
	assert.Equal(t, "123", recibido["idValue"])
	require.Len(t, filas, 1)
	assert.Equal(t, "3109998877", filas[0]["celular"])
}

func TestDeleteConCuerpo(t *testing.T) {
	var recibido map[string]any
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/delete", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		json.NewEncoder(w).Encode(map[string]any{"deleted": 1})
	}))
	defer servidor.Close()

	c := NewClient(servidor.URL, time.Second)

	err := c.Delete(context.Background(), "token", "persona", "nro_doc", "123")

	require.NoError(t, err)
	assert.Equal(t, "persona", recibido["tableName"])
	assert.Equal(t, "123", recibido["idValue"])
}

func TestEstadoInesperadoEsErrorTerminal(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tabla no existe", http.StatusBadRequest)
	}))
	defer servidor.Close()

	c := NewClient(servidor.URL, time.Second)

	_, err := c.Read(context.Background(), "token", "inexistente", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROBLE respondió 400")
}

func TestAuthLogin(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)

		var credenciales map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&credenciales))

		if credenciales["password"] != "correcta" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "token-emitido", "refreshToken": "refresh"})
	}))
	defer servidor.Close()

	a := NewAuthClient(servidor.URL, time.Second)

	resultado, err := a.Login(context.Background(), "a@b.com", "correcta")
	require.NoError(t, err)
	assert.Equal(t, "token-emitido", resultado.AccessToken)

	_, err = a.Login(context.Background(), "a@b.com", "incorrecta")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthVerifyTokenRechazado(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expirado", http.StatusUnauthorized)
	}))
	defer servidor.Close()

	a := NewAuthClient(servidor.URL, time.Second)

	_, err := a.VerifyToken(context.Background(), "token-viejo")

	assert.ErrorIs(t, err, ErrUnauthorized)
}
