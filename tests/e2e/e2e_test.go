//go:build integration

package e2e

// e2e_test.go
// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - register → login → perfil
//   - admin builds catalog: categoría, ingrediente, producto
//   - receta: duplicate ingredient rejected with 409, fusion accepted
//   - costeo round-trip over persisted rows
//   - public menu with caching
//   - pedido creation leaves a pending factura

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nejosudo/Restaurante-Mayer/internal/config"
	"github.com/Nejosudo/Restaurante-Mayer/internal/infra"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/router"
	"github.com/Nejosudo/Restaurante-Mayer/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

const adminPassword = "mayer2026"

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server     *httptest.Server
	adminToken string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("mayer_test"),
		tcPostgres.WithUsername("mayer"),
		tcPostgres.WithPassword("mayer"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		NombreRestaurante:  "Restaurante Mayer",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Admin seeded directly: self-registration only ever mints clientes.
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (nombre, apellido, email, password_hash, rol, activo)
		VALUES ('Admin', 'E2E', 'admin@e2e.test', ?, 'admin', true)
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	// Labor parameters the costeo needs: factor de carga = 1.20
	for clave, par := range map[string][2]string{
		model.ClaveSalarioMinimo:     {"1000000", "Salario mínimo"},
		model.ClaveAuxilioTransporte: {"100000", "Auxilio de transporte"},
		model.ClaveSeguridadSocial:   {"0.10", "Seguridad social"},
		model.ClaveParafiscales:      {"0.05", "Parafiscales"},
		model.ClavePrestaciones:      {"0.05", "Prestaciones"},
		model.ClaveDotacionAnual:     {"120000", "Dotación anual"},
	} {
		require.NoError(t, db.Exec(
			`INSERT INTO configuraciones (clave, valor, categoria, etiqueta) VALUES (?, ?, 'labor', ?) ON CONFLICT DO NOTHING`,
			clave, par[0], par[1]).Error)
	}

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": adminPassword}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, adminToken: loginBody.AccessToken}
}

func (env *testEnv) crearCategoria(t *testing.T, nombre string) string {
	resp := do(t, env.server, "POST", "/v1/categorias",
		jsonBody(t, map[string]any{"nombre": nombre}), env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &cat)
	return cat.ID
}

func (env *testEnv) crearIngrediente(t *testing.T, nombre string, costo float64) string {
	resp := do(t, env.server, "POST", "/v1/ingredientes",
		jsonBody(t, map[string]any{
			"nombre":           nombre,
			"unidad":           "gramo",
			"costo_por_unidad": costo,
		}), env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ing struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &ing)
	return ing.ID
}

func (env *testEnv) crearProducto(t *testing.T, categoriaID, nombre string, precio float64) string {
	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":       nombre,
			"categoria_id": categoriaID,
			"precio_venta": precio,
		}), env.adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_RegistroYPerfil(t *testing.T) {
	env := setupTestEnv(t)

	regResp := do(t, env.server, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{
			"email":    "cliente@e2e.test",
			"password": "secreta123",
			"nombre":   "Cliente",
			"apellido": "Prueba",
		}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	var reg struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Rol string `json:"rol"`
		} `json:"user"`
	}
	decodeJSON(t, regResp, &reg)
	assert.Equal(t, "cliente", reg.User.Rol)

	perfilResp := do(t, env.server, "GET", "/v1/perfil", nil, reg.AccessToken)
	require.Equal(t, http.StatusOK, perfilResp.StatusCode)
	var perfil struct {
		Email string `json:"email"`
	}
	decodeJSON(t, perfilResp, &perfil)
	assert.Equal(t, "cliente@e2e.test", perfil.Email)

	// Clientes never reach the admin surface.
	prodResp := do(t, env.server, "GET", "/v1/productos", nil, reg.AccessToken)
	assert.Equal(t, http.StatusForbidden, prodResp.StatusCode)
	prodResp.Body.Close()
}

func TestE2E_RecetaDuplicadosYCosteo(t *testing.T) {
	env := setupTestEnv(t)

	catID := env.crearCategoria(t, "Panadería")
	harinaID := env.crearIngrediente(t, "Harina de trigo", 20)
	prodID := env.crearProducto(t, catID, "Pan campesino", 4000)

	// Duplicate ingredient rows → 409 with the offending names.
	dupResp := do(t, env.server, "PUT", "/v1/productos/"+prodID+"/receta",
		jsonBody(t, map[string]any{
			"ingredientes": []map[string]any{
				{"ingrediente_id": harinaID, "cantidad": 0.3},
				{"ingrediente_id": harinaID, "cantidad": 0.2},
			},
			"unidades_mes": 1000,
			"dias_mes":     26,
		}), env.adminToken)
	require.Equal(t, http.StatusConflict, dupResp.StatusCode)
	var conflicto struct {
		Duplicados []string `json:"duplicados"`
	}
	decodeJSON(t, dupResp, &conflicto)
	assert.Contains(t, conflicto.Duplicados, "Harina de trigo")

	// Same submission with confirmar_fusion collapses the rows.
	fusionResp := do(t, env.server, "PUT", "/v1/productos/"+prodID+"/receta",
		jsonBody(t, map[string]any{
			"ingredientes": []map[string]any{
				{"ingrediente_id": harinaID, "cantidad": 0.3},
				{"ingrediente_id": harinaID, "cantidad": 0.2},
			},
			"mano_obra": []map[string]any{
				{"rol": "Cocinero", "cantidad_personal": 2, "salario_base": 1000000},
			},
			"unidades_mes":     1000,
			"dias_mes":         26,
			"confirmar_fusion": true,
		}), env.adminToken)
	require.Equal(t, http.StatusOK, fusionResp.StatusCode)
	var costeo struct {
		TotalManoObraMes   string `json:"total_mano_obra_mes"`
		TotalMaterialesMes string `json:"total_materiales_mes"`
		CostoUnitario      string `json:"costo_unitario"`
		Ingredientes       []struct {
			Cantidad string `json:"cantidad"`
		} `json:"ingredientes"`
	}
	decodeJSON(t, fusionResp, &costeo)
	require.Len(t, costeo.Ingredientes, 1)
	assert.Equal(t, "0.5", costeo.Ingredientes[0].Cantidad)
	// 2×1000000×1.20 + 2×100000 + 2×120000/12 = 2620000
	assert.Equal(t, "2620000", costeo.TotalManoObraMes)
	// 0.5 × 1000 × 20 = 10000
	assert.Equal(t, "10000", costeo.TotalMaterialesMes)

	// The persisted recipe re-derives the same profile.
	getResp := do(t, env.server, "GET", "/v1/productos/"+prodID+"/costeo", nil, env.adminToken)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var releido struct {
		TotalManoObraMes string `json:"total_mano_obra_mes"`
	}
	decodeJSON(t, getResp, &releido)
	assert.Equal(t, costeo.TotalManoObraMes, releido.TotalManoObraMes)
}

func TestE2E_MenuPublicoYPedido(t *testing.T) {
	env := setupTestEnv(t)

	catID := env.crearCategoria(t, "Platos fuertes")
	prodID := env.crearProducto(t, catID, "Bandeja paisa", 25000)

	// Public menu needs no token.
	menuResp := do(t, env.server, "GET", "/v1/menu", nil, "")
	require.Equal(t, http.StatusOK, menuResp.StatusCode)
	var menu struct {
		Categorias []struct {
			Nombre    string `json:"nombre"`
			Productos []struct {
				ID string `json:"id"`
			} `json:"productos"`
		} `json:"categorias"`
	}
	decodeJSON(t, menuResp, &menu)
	require.Len(t, menu.Categorias, 1)
	require.Len(t, menu.Categorias[0].Productos, 1)
	assert.Equal(t, prodID, menu.Categorias[0].Productos[0].ID)

	// Customer places an order.
	regResp := do(t, env.server, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{
			"email": "pedidos@e2e.test", "password": "secreta123", "nombre": "Cliente",
		}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	var reg struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, regResp, &reg)

	pedidoResp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"producto_id": prodID, "cantidad": 2}},
		}), reg.AccessToken)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		ID    string      `json:"id"`
		Total string `json:"total"`
	}
	decodeJSON(t, pedidoResp, &pedido)
	assert.Equal(t, "50000", pedido.Total)

	// The factura exists immediately, pending generation.
	factResp := do(t, env.server, "GET", fmt.Sprintf("/v1/pedidos/%s/factura", pedido.ID), nil, reg.AccessToken)
	require.Equal(t, http.StatusOK, factResp.StatusCode)
	var factura struct {
		Estado string `json:"estado"`
	}
	decodeJSON(t, factResp, &factura)
	assert.Equal(t, "pendiente", factura.Estado)

	// Another customer cannot see that order.
	reg2Resp := do(t, env.server, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{
			"email": "otro@e2e.test", "password": "secreta123", "nombre": "Otro",
		}), "")
	require.Equal(t, http.StatusCreated, reg2Resp.StatusCode)
	var reg2 struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, reg2Resp, &reg2)

	ajenoResp := do(t, env.server, "GET", "/v1/pedidos/"+pedido.ID, nil, reg2.AccessToken)
	assert.Equal(t, http.StatusNotFound, ajenoResp.StatusCode)
	ajenoResp.Body.Close()
}
