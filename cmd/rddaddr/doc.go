/*
rddaddr decodes, validates and derives Reddcoin addresses.

Decoding an address prints its hash, type, network and output script:

	$ rddaddr decode RhJ59XtQr6UmkLFkagiK935Z2mBALCEoFU
	{
	  "address": "RhJ59XtQr6UmkLFkagiK935Z2mBALCEoFU",
	  "hash": "5f2ea7d27612f17cc8e33d6c764fa5e0612bf807",
	  "type": "pubkeyhash",
	  "network": "livenet",
	  "script": "76a9145f2ea7d27612f17cc8e33d6c764fa5e0612bf80788ac"
	}

validate exits non-zero and prints the reason when an address is invalid,
optionally checking it against --network and --type:

	$ rddaddr validate --network testnet rdd1qtuh205nkztchej8r84k8vna9upsjh7q83y3usu
	Error: Address has mismatched network type.

Addresses are derived from a public key with pubkey, from several keys with
multisig, and from a key plus an optional script tree with taproot:

	$ rddaddr pubkey --type scripthash 0285e9737a74c30a873f74df05124f2aa6f53042c2fc0a130d6cbd7d16b944b004
	$ rddaddr multisig --nested 2 KEY1 KEY2 KEY3
	$ rddaddr taproot --leaf 51 --leaf 5175 KEY

Output descriptors made of concrete keys are supported too:

	$ rddaddr descriptor "wsh(sortedmulti(2,KEY1,KEY2,KEY3))"

Extra networks, such as a local regtest, are loaded from YAML with
--networks and then selected by name:

	$ rddaddr --networks regtest.yaml pubkey --network regtest KEY

The -v and -d flags raise the log level to info and debug.
*/
package main
