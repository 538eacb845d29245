/*
Package payment builds the output scripts Reddcore addresses commit to.

It can be used for the creation of p2pkh, p2ms, p2sh, p2wpkh, p2wsh, nested
SegWit and p2tr outputs. Address strings are produced by the address package.
*/
package payment
