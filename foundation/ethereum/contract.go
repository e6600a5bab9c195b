package ethereum

// anchorABI is the ABI of the DatasetIntegrity contract deployed on the
// Sepolia test network. The contract is a plain mapping from dataset name
// to digest string, storeHash overwrites any previous digest for the name.
const anchorABI = `[
  {
    "inputs": [
      { "internalType": "string", "name": "datasetName", "type": "string" },
      { "internalType": "string", "name": "hashValue", "type": "string" }
    ],
    "name": "storeHash",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "string", "name": "datasetName", "type": "string" }
    ],
    "name": "getHash",
    "outputs": [
      { "internalType": "string", "name": "", "type": "string" }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`
