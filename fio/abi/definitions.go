// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package abi

// Type names of the builtin ABIs.
const (
	TypeTransaction       = "transaction"
	TypeABIDef            = "abi_def"
	TypeNewFundsContent   = "new_funds_content"
	TypeRecordSendContent = "record_obt_data_content"
)

// TransactionABI defines the transaction type signed and pushed to nodes.
var TransactionABI = MustParse(`{
	"version": "eosio::abi/1.1",
	"structs": [{
		"name": "permission_level", "base": "",
		"fields": [
			{"name": "actor", "type": "name"},
			{"name": "permission", "type": "name"}
		]
	}, {
		"name": "action", "base": "",
		"fields": [
			{"name": "account", "type": "name"},
			{"name": "name", "type": "name"},
			{"name": "authorization", "type": "permission_level[]"},
			{"name": "data", "type": "bytes"}
		]
	}, {
		"name": "extension", "base": "",
		"fields": [
			{"name": "type", "type": "uint16"},
			{"name": "data", "type": "bytes"}
		]
	}, {
		"name": "transaction_header", "base": "",
		"fields": [
			{"name": "expiration", "type": "time_point_sec"},
			{"name": "ref_block_num", "type": "uint16"},
			{"name": "ref_block_prefix", "type": "uint32"},
			{"name": "max_net_usage_words", "type": "varuint32"},
			{"name": "max_cpu_usage_ms", "type": "uint8"},
			{"name": "delay_sec", "type": "varuint32"}
		]
	}, {
		"name": "transaction", "base": "transaction_header",
		"fields": [
			{"name": "context_free_actions", "type": "action[]"},
			{"name": "actions", "type": "action[]"},
			{"name": "transaction_extensions", "type": "extension[]"}
		]
	}]
}`)

// DefinitionABI defines abi_def, the binary form of contract ABIs returned
// by get_raw_abi.
var DefinitionABI = MustParse(`{
	"version": "eosio::abi/1.1",
	"structs": [{
		"name": "type_def", "base": "",
		"fields": [
			{"name": "new_type_name", "type": "string"},
			{"name": "type", "type": "string"}
		]
	}, {
		"name": "field_def", "base": "",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "type", "type": "string"}
		]
	}, {
		"name": "struct_def", "base": "",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "base", "type": "string"},
			{"name": "fields", "type": "field_def[]"}
		]
	}, {
		"name": "action_def", "base": "",
		"fields": [
			{"name": "name", "type": "name"},
			{"name": "type", "type": "string"},
			{"name": "ricardian_contract", "type": "string"}
		]
	}, {
		"name": "table_def", "base": "",
		"fields": [
			{"name": "name", "type": "name"},
			{"name": "index_type", "type": "string"},
			{"name": "key_names", "type": "string[]"},
			{"name": "key_types", "type": "string[]"},
			{"name": "type", "type": "string"}
		]
	}, {
		"name": "clause_pair", "base": "",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "body", "type": "string"}
		]
	}, {
		"name": "error_message", "base": "",
		"fields": [
			{"name": "error_code", "type": "uint64"},
			{"name": "error_msg", "type": "string"}
		]
	}, {
		"name": "extensions_entry", "base": "",
		"fields": [
			{"name": "tag", "type": "uint16"},
			{"name": "value", "type": "bytes"}
		]
	}, {
		"name": "variant_def", "base": "",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "types", "type": "string[]"}
		]
	}, {
		"name": "abi_def", "base": "",
		"fields": [
			{"name": "version", "type": "string"},
			{"name": "types", "type": "type_def[]"},
			{"name": "structs", "type": "struct_def[]"},
			{"name": "actions", "type": "action_def[]"},
			{"name": "tables", "type": "table_def[]"},
			{"name": "ricardian_clauses", "type": "clause_pair[]"},
			{"name": "error_messages", "type": "error_message[]"},
			{"name": "abi_extensions", "type": "extensions_entry[]"},
			{"name": "variants", "type": "variant_def[]$"}
		]
	}]
}`)

// ContentABI defines the encrypted content of funds requests and of
// records of sent funds.
var ContentABI = MustParse(`{
	"version": "eosio::abi/1.1",
	"structs": [{
		"name": "new_funds_content", "base": "",
		"fields": [
			{"name": "payee_public_address", "type": "string"},
			{"name": "amount", "type": "string"},
			{"name": "token_code", "type": "string"},
			{"name": "memo", "type": "string?"},
			{"name": "hash", "type": "string?"},
			{"name": "offline_url", "type": "string?"}
		]
	}, {
		"name": "record_obt_data_content", "base": "",
		"fields": [
			{"name": "payer_public_address", "type": "string"},
			{"name": "payee_public_address", "type": "string"},
			{"name": "amount", "type": "string"},
			{"name": "token_code", "type": "string"},
			{"name": "status", "type": "string"},
			{"name": "obt_id", "type": "string"},
			{"name": "memo", "type": "string?"},
			{"name": "hash", "type": "string?"},
			{"name": "offline_url", "type": "string?"}
		]
	}]
}`)
