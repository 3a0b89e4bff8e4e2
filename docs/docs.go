// Package docs registers the OpenAPI description of the FiscalManager API
// served by gin-swagger at /swagger/*any.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
        },
        "schemas": {
            "ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {"type": "string", "example": "ERR_NOT_FOUND"},
                    "message": {"type": "string"},
                    "field": {"type": "string"},
                    "request_id": {"type": "string"},
                    "timestamp": {"type": "string", "format": "date-time"}
                }
            },
            "Response": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean"},
                    "data": {},
                    "error": {"$ref": "#/components/schemas/ErrorInfo"}
                }
            },
            "RegisterInput": {
                "type": "object",
                "required": ["nome", "email", "senha"],
                "properties": {
                    "nome": {"type": "string"},
                    "email": {"type": "string", "format": "email"},
                    "senha": {"type": "string"},
                    "role": {"type": "string", "enum": ["admin", "user"]}
                }
            },
            "LoginInput": {
                "type": "object",
                "required": ["email", "senha"],
                "properties": {
                    "email": {"type": "string", "format": "email"},
                    "senha": {"type": "string"}
                }
            },
            "CompanyRequest": {
                "type": "object",
                "required": ["nome", "cnpj", "cidade", "estado", "regime_tributario"],
                "properties": {
                    "nome": {"type": "string"},
                    "cnpj": {"type": "string"},
                    "rua": {"type": "string"},
                    "numero": {"type": "string"},
                    "bairro": {"type": "string"},
                    "cidade": {"type": "string"},
                    "estado": {"type": "string"},
                    "cep": {"type": "string"},
                    "regime_tributario": {"type": "string", "enum": ["Simples Nacional", "Lucro Presumido", "Lucro Real"]}
                }
            },
            "ProductRequest": {
                "type": "object",
                "required": ["empresa_id", "nome"],
                "properties": {
                    "empresa_id": {"type": "string", "format": "uuid"},
                    "nome": {"type": "string"},
                    "codigo": {"type": "string"},
                    "categoria": {"type": "string"},
                    "valor_unitario": {"type": "string", "example": "99.90"},
                    "aliquota_icms": {"type": "string", "example": "18"},
                    "aliquota_pis": {"type": "string", "example": "1.65"},
                    "aliquota_cofins": {"type": "string", "example": "7.6"},
                    "aliquota_ipi": {"type": "string", "example": "0"}
                }
            },
            "CreateInvoiceRequest": {
                "type": "object",
                "required": ["empresa_id", "numero_nf", "itens"],
                "properties": {
                    "empresa_id": {"type": "string", "format": "uuid"},
                    "numero_nf": {"type": "string"},
                    "itens": {
                        "type": "array",
                        "minItems": 1,
                        "items": {
                            "type": "object",
                            "required": ["produto_id", "quantidade"],
                            "properties": {
                                "produto_id": {"type": "string", "format": "uuid"},
                                "quantidade": {"type": "string", "example": "2"}
                            }
                        }
                    }
                }
            }
        },
        "parameters": {
            "ID": {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}},
            "CompanyFilter": {"name": "empresa_id", "in": "query", "schema": {"type": "string", "format": "uuid"}}
        },
        "responses": {
            "Envelope": {"description": "Success", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Response"}}}},
            "Error": {"description": "Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Response"}}}}
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register a user", "security": [],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterInput"}}}},
                "responses": {"201": {"$ref": "#/components/responses/Envelope"}, "400": {"$ref": "#/components/responses/Error"}, "409": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "User login", "security": [],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginInput"}}}},
                "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "401": {"$ref": "#/components/responses/Error"}, "429": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Revoke the presented token", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "401": {"$ref": "#/components/responses/Error"}}}
        },
        "/auth/me": {
            "get": {"tags": ["auth"], "summary": "Current user", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "401": {"$ref": "#/components/responses/Error"}}}
        },
        "/empresas": {
            "get": {"tags": ["empresas"], "summary": "List companies", "responses": {"200": {"$ref": "#/components/responses/Envelope"}}},
            "post": {
                "tags": ["empresas"], "summary": "Create a company",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CompanyRequest"}}}},
                "responses": {"201": {"$ref": "#/components/responses/Envelope"}, "400": {"$ref": "#/components/responses/Error"}, "409": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/empresas/{id}": {
            "parameters": [{"$ref": "#/components/parameters/ID"}],
            "get": {"tags": ["empresas"], "summary": "Get a company", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}},
            "put": {
                "tags": ["empresas"], "summary": "Update a company",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CompanyRequest"}}}},
                "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}, "409": {"$ref": "#/components/responses/Error"}}
            },
            "delete": {"tags": ["empresas"], "summary": "Delete a company", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}}
        },
        "/produtos": {
            "get": {"tags": ["produtos"], "summary": "List products", "parameters": [{"$ref": "#/components/parameters/CompanyFilter"}], "responses": {"200": {"$ref": "#/components/responses/Envelope"}}},
            "post": {
                "tags": ["produtos"], "summary": "Create a product",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ProductRequest"}}}},
                "responses": {"201": {"$ref": "#/components/responses/Envelope"}, "400": {"$ref": "#/components/responses/Error"}, "404": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/produtos/{id}": {
            "parameters": [{"$ref": "#/components/parameters/ID"}],
            "get": {"tags": ["produtos"], "summary": "Get a product", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}},
            "put": {
                "tags": ["produtos"], "summary": "Update a product",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ProductRequest"}}}},
                "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}
            },
            "delete": {"tags": ["produtos"], "summary": "Delete a product", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}}
        },
        "/notas": {
            "get": {"tags": ["notas"], "summary": "List invoices, newest first", "parameters": [{"$ref": "#/components/parameters/CompanyFilter"}], "responses": {"200": {"$ref": "#/components/responses/Envelope"}}},
            "post": {
                "tags": ["notas"], "summary": "Emit an invoice",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateInvoiceRequest"}}}},
                "responses": {"201": {"$ref": "#/components/responses/Envelope"}, "400": {"$ref": "#/components/responses/Error"}, "404": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/notas/{id}": {
            "parameters": [{"$ref": "#/components/parameters/ID"}],
            "get": {"tags": ["notas"], "summary": "Get an invoice", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}},
            "delete": {"tags": ["notas"], "summary": "Delete an invoice", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "404": {"$ref": "#/components/responses/Error"}}}
        },
        "/dashboard": {
            "get": {"tags": ["dashboard"], "summary": "Dashboard", "responses": {"200": {"$ref": "#/components/responses/Envelope"}}}
        },
        "/relatorios/pdf": {
            "get": {
                "tags": ["relatorios"], "summary": "Fiscal report as PDF", "parameters": [{"$ref": "#/components/parameters/CompanyFilter"}],
                "responses": {"200": {"description": "relatorio_fiscal.pdf", "content": {"application/pdf": {"schema": {"type": "string", "format": "binary"}}}}}
            }
        },
        "/relatorios/excel": {
            "get": {
                "tags": ["relatorios"], "summary": "Fiscal report as XLSX", "parameters": [{"$ref": "#/components/parameters/CompanyFilter"}],
                "responses": {"200": {"description": "relatorio_fiscal.xlsx", "content": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {"schema": {"type": "string", "format": "binary"}}}}}
            }
        },
        "/relatorios/arquivo": {
            "get": {"tags": ["relatorios"], "summary": "Archived reports", "responses": {"200": {"$ref": "#/components/responses/Envelope"}, "503": {"$ref": "#/components/responses/Error"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "FiscalManager Total API",
	Description:      "Multi-tenant fiscal backend: companies, products, invoices with ICMS/PIS/COFINS/IPI and fiscal reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
